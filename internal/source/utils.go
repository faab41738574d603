package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

const bom = "\uFEFF"

// Normalize strips a leading BOM, rewrites CRLF to LF and converts the text
// to Unicode NFC. The returned flags record which rewrites happened.
func Normalize(text string) (string, Flags) {
	var flags Flags
	if out, had := removeBOM(text); had {
		text = out
		flags |= FileHadBOM
	}
	if out, changed := normalizeCRLF(text); changed {
		text = out
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
		flags |= FileNormalizedNFC
	}
	return text, flags
}

// normalizeCRLF replaces every \r\n with \n and leaves lone \r alone.
func normalizeCRLF(text string) (string, bool) {
	if !strings.Contains(text, "\r\n") {
		return text, false
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), true
}

func removeBOM(text string) (string, bool) {
	if after, ok := strings.CutPrefix(text, bom); ok {
		return after, true
	}
	return text, false
}

func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, mustUint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// largest i with lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[hi] + 1
	return LineCol{Line: mustUint32(hi + 2), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	if p == "" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns target relative to baseDir, falling back to the
// absolute path when target lies outside baseDir.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return normalizePath(absTarget), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
