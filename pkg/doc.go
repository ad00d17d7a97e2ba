// Package pkg provides the core libraries for ratiomerge.
//
// # Overview
//
// ratiomerge reads N paired input files of "x y" records, each sorted by x,
// and writes every record to the output paired with its input, in global x
// order, as "x<TAB>dy". dy is the log of y relative to a running baseline:
// the midpoint of the log range of the current stream heads, never allowed
// to decrease.
//
// # Architecture
//
//	config.Job (arguments or TOML file)
//	         ↓
//	    [pipeline] opens inputs, then creates outputs
//	         ↓
//	    [merge] selects the minimum-x head and computes dy
//	         ↓
//	    [io] writes "%f\t%f" lines per stream
//
// # Main Packages
//
//   - [merge] - Head, Frontier, Step and the streaming Merger
//   - [io] - line-oriented record Reader and Writer
//   - [config] - job definition from positional arguments or a TOML file
//   - [pipeline] - end-to-end execution of a job against the filesystem
//   - [errors] - coded errors and path validation
//   - [observability] - merge lifecycle hooks
//   - [buildinfo] - version information injected at link time
//
// # Quick Start
//
//	job, _ := config.FromArgs([]string{"a.dat", "b.dat", "a.out", "b.out"})
//	res, err := pipeline.NewRunner(nil).Execute(ctx, job)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Stats.Records, res.Stats.FinalCenter)
//
// [merge]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/merge
// [io]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ratiomerge/pkg/buildinfo
package pkg
