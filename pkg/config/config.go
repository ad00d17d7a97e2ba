// Package config describes a merge job: the ordered input/output pairs and
// the malformed-line policy.
//
// A job comes either from positional command-line arguments, where the
// first half are inputs and the second half outputs, or from a TOML file:
//
//	strict = false
//
//	[[stream]]
//	input  = "ans-1.dat"
//	output = "ans-1.norm"
//
//	[[stream]]
//	input  = "ans-2.dat"
//	output = "ans-2.norm"
//
// Relative paths in a TOML file are resolved against the file's directory.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ratiomerge/pkg/errors"
)

// Pair is one input file and the output file it is merged into.
type Pair struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// Job is a validated merge job.
type Job struct {
	Strict  bool   `toml:"strict"`
	Streams []Pair `toml:"stream"`
}

// Inputs returns the input paths in stream order.
func (j *Job) Inputs() []string {
	out := make([]string, len(j.Streams))
	for i, p := range j.Streams {
		out[i] = p.Input
	}
	return out
}

// Outputs returns the output paths in stream order.
func (j *Job) Outputs() []string {
	out := make([]string, len(j.Streams))
	for i, p := range j.Streams {
		out[i] = p.Output
	}
	return out
}

// Validate checks that the job has at least one stream, that every stream
// names both files, and that no output overwrites an input or another
// output.
func (j *Job) Validate() error {
	return errors.ValidatePairs(j.Inputs(), j.Outputs())
}

// FromArgs builds a job from positional arguments: in_1 ... in_n out_1 ... out_n.
// An odd or empty argument list is an INVALID_ARGS error.
func FromArgs(args []string) (*Job, error) {
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgs, "no input and output files given")
	}
	if len(args)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgs, "expected as many outputs as inputs, got %d paths", len(args))
	}

	n := len(args) / 2
	job := &Job{Streams: make([]Pair, n)}
	for i := 0; i < n; i++ {
		job.Streams[i] = Pair{Input: args[i], Output: args[n+i]}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Load reads and validates a TOML job file. Unknown keys are rejected.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	job, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	base := filepath.Dir(path)
	for i := range job.Streams {
		job.Streams[i].Input = resolve(base, job.Streams[i].Input)
		job.Streams[i].Output = resolve(base, job.Streams[i].Output)
	}
	if err := job.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return job, nil
}

// Parse decodes a TOML job without resolving or validating paths.
func Parse(data string) (*Job, error) {
	var job Job
	md, err := toml.Decode(data, &job)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &job, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
