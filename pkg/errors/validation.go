package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePath validates a single input or output path.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path %q contains invalid characters", path)
		}
	}
	return nil
}

// ValidatePairs validates positionally paired input and output paths.
// inputs[i] pairs with outputs[i].
//
// It rejects:
//   - an empty pair list
//   - mismatched list lengths
//   - invalid paths (see [ValidatePath])
//   - an output that names an input file, since outputs are truncated on open
//   - two streams writing to the same output
//
// Paths are compared in absolute form. Existing files are also compared
// with [os.SameFile], which catches links to an input.
func ValidatePairs(inputs, outputs []string) error {
	if len(inputs) != len(outputs) {
		return New(ErrCodeInvalidConfig, "got %d inputs but %d outputs", len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return New(ErrCodeInvalidConfig, "at least one input/output pair is required")
	}

	ins := make(map[string]int, len(inputs))
	for i, p := range inputs {
		if err := ValidatePath(p); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "input %d", i+1)
		}
		ins[pathKey(p)] = i
	}

	outs := make(map[string]int, len(outputs))
	for i, p := range outputs {
		if err := ValidatePath(p); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "output %d", i+1)
		}
		key := pathKey(p)
		if j, ok := ins[key]; ok {
			return New(ErrCodeInvalidConfig, "output %d (%s) is also input %d", i+1, p, j+1)
		}
		if j, ok := sameFile(p, inputs); ok {
			return New(ErrCodeInvalidConfig, "output %d (%s) is also input %d", i+1, p, j+1)
		}
		if j, ok := outs[key]; ok {
			return New(ErrCodeInvalidConfig, "outputs %d and %d both write %s", j+1, i+1, p)
		}
		outs[key] = i
	}
	return nil
}

// pathKey returns the absolute form of p, or its cleaned form if the
// working directory is unavailable.
func pathKey(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// sameFile reports the index of the input that refers to the same existing
// file as output.
func sameFile(output string, inputs []string) (int, bool) {
	out, err := os.Stat(output)
	if err != nil {
		return 0, false
	}
	for i, p := range inputs {
		in, err := os.Stat(p)
		if err == nil && os.SameFile(in, out) {
			return i, true
		}
	}
	return 0, false
}
