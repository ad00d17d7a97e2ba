package io

import (
	"bufio"
	stderrors "errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/ratiomerge/pkg/errors"
	"github.com/matzehuels/ratiomerge/pkg/merge"
)

// Reader reads records from a line-oriented input. It implements
// merge.Source.
type Reader struct {
	name   string
	r      *bufio.Reader
	closer io.Closer
	line   int
	done   bool
}

var _ merge.Source = (*Reader)(nil)

// NewReader returns a reader over r. name appears in error messages.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{name: name, r: bufio.NewReader(r)}
}

// OpenInput opens the file at path for reading.
// The returned reader must be closed with [Reader.Close].
func OpenInput(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open input %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open input %s", path)
	}
	r := NewReader(f, path)
	r.closer = f
	return r, nil
}

// Next returns the next record. It returns io.EOF when the input has no
// more lines. A malformed line consumes that line, so calling Next again
// continues with the following one.
func (r *Reader) Next() (merge.Point, error) {
	if r.done {
		return merge.Point{}, io.EOF
	}

	text, err := r.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return merge.Point{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", r.name)
	}
	if err == io.EOF {
		r.done = true
		if text == "" {
			return merge.Point{}, io.EOF
		}
	}

	r.line++
	text = strings.TrimRight(text, "\r\n")
	p, err := ParseRecord(text)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			e.Message = r.name + ": " + e.Message
		}
		var re *errors.RecordError
		if stderrors.As(err, &re) {
			re.Line = r.line
		}
		return merge.Point{}, err
	}
	return p, nil
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int { return r.line }

// Close closes the underlying file, if the reader was opened with
// [OpenInput].
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ParseRecord parses one input line. Numbers outside the float64 range
// parse as ±Inf or ±0. The returned error is an
// INVALID_RECORD or PARSE_ERROR error whose cause is an
// *errors.RecordError; its line number is left at zero.
func ParseRecord(text string) (merge.Point, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return merge.Point{}, errors.Wrap(errors.ErrCodeInvalidRecord, &errors.RecordError{Text: text},
			"expected two fields, found %d", len(fields))
	}

	x, err := parseField(fields[0])
	if err != nil {
		return merge.Point{}, errors.Wrap(errors.ErrCodeParse, &errors.RecordError{Text: text},
			"x field %q is not a number", fields[0])
	}
	y, err := parseField(fields[1])
	if err != nil {
		return merge.Point{}, errors.Wrap(errors.ErrCodeParse, &errors.RecordError{Text: text},
			"y field %q is not a number", fields[1])
	}
	return merge.Point{X: x, Y: y}, nil
}

func parseField(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
