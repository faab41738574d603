package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ErrNoManifest is returned by Load when no frontkit.toml is found.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Manifest is a decoded and validated frontkit.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

var configValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their TOML keys
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load finds frontkit.toml from startDir upwards and loads it.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadFile(path)
}

// LoadFile loads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Decode parses and validates manifest text.
func Decode(data string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if !meta.IsDefined("package") {
		return Config{}, errors.New("missing [package]")
	}
	if !meta.IsDefined("tool") {
		return Config{}, errors.New("missing [tool]")
	}
	if err := configValidate.Struct(&cfg); err != nil {
		return Config{}, validationError(err)
	}
	if cfg.Tool.Name != "grammar" && (cfg.Tool.Kind != "" || cfg.Tool.Summary) {
		return Config{}, errors.New("invalid manifest: tool.kind and tool.summary need tool.name = \"grammar\"")
	}
	return cfg, nil
}

// validationError turns validator output into one line per field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", field, rule))
	}
	return fmt.Errorf("invalid manifest: %s", strings.Join(msgs, "; "))
}
