// Package io reads and writes the line-oriented numeric files that a merge
// consumes and produces.
//
// # Input Format
//
// One record per line. A record is at least two whitespace-separated
// numbers; the first is x, the second is y, and any further fields are
// ignored:
//
//	0.125   3.5
//	0.250   4.0   # trailing fields are ignored
//
// A line with fewer than two fields (including a blank line) is reported
// as an INVALID_RECORD error. A field that is not a number, or is NaN, is
// reported as a PARSE_ERROR. Both carry an [errors.RecordError] with the
// line number and text.
//
// # Output Format
//
// One record per line, x and dy separated by a tab, each printed with six
// decimals:
//
//	0.125000	0.346574
//
// Infinite and NaN values are written as inf, -inf and nan.
//
// # Files
//
// [OpenInput] and [CreateOutput] open files and wrap failures as
// FILE_NOT_FOUND or IO_ERROR errors naming the path. [NewReader] and
// [NewWriter] work on any io.Reader or io.Writer.
//
// [errors.RecordError]: github.com/matzehuels/ratiomerge/pkg/errors.RecordError
package io
