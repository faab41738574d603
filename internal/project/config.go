package project

// Config mirrors frontkit.toml.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Tool        ToolConfig        `toml:"tool"`
	Sources     SourcesConfig     `toml:"sources"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Watch       WatchConfig       `toml:"watch"`
}

type PackageConfig struct {
	Name string `toml:"name" validate:"required"`
}

type ToolConfig struct {
	Name string `toml:"name" validate:"required,oneof=lex grammar"`
	// grammar only
	Kind    string `toml:"kind"`
	Summary bool   `toml:"summary"`
	// lex only
	Keywords  []string `toml:"keywords" validate:"dive,required"`
	TokenDump bool     `toml:"token_dump"`
}

// SourcesConfig lists where sources come from. Every file is checked in its
// own driver run.
type SourcesConfig struct {
	Path      string        `toml:"path" validate:"required_without_all=Glob Inline"`
	Glob      string        `toml:"glob"`
	Normalize bool          `toml:"normalize"`
	Inline    *InlineConfig `toml:"inline"`
}

type InlineConfig struct {
	Name string `toml:"name" validate:"required"`
	Text string `toml:"text"`
}

type DiagnosticsConfig struct {
	Max    int    `toml:"max" validate:"gte=0"`
	Format string `toml:"format" validate:"omitempty,oneof=pretty json short"`
}

// WatchConfig filters the events watch mode reacts to. Patterns are
// doublestar globs relative to the project root.
type WatchConfig struct {
	Include    []string `toml:"include"`
	Exclude    []string `toml:"exclude"`
	DebounceMS int      `toml:"debounce_ms" validate:"gte=0,lte=60000"`
}
