package io

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/matzehuels/ratiomerge/pkg/errors"
	"github.com/matzehuels/ratiomerge/pkg/merge"
)

// Writer writes normalized records, one "x<TAB>dy" line each. Output is
// buffered; call [Writer.Flush] or [Writer.Close] to make it durable.
// It implements merge.Sink.
type Writer struct {
	name   string
	w      *bufio.Writer
	closer io.Closer
	count  int
	buf    []byte
}

var _ merge.Sink = (*Writer)(nil)

// NewWriter returns a writer over w. name appears in error messages.
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{name: name, w: bufio.NewWriter(w)}
}

// CreateOutput creates or truncates the file at path.
// The returned writer must be closed with [Writer.Close].
func CreateOutput(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output %s", path)
	}
	w := NewWriter(f, path)
	w.closer = f
	return w, nil
}

// Write appends one record.
func (w *Writer) Write(x, dy float64) error {
	w.buf = AppendRecord(w.buf[:0], x, dy)
	if _, err := w.w.Write(w.buf); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", w.name)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// Flush writes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "flush %s", w.name)
	}
	return nil
}

// Close flushes buffered records and closes the underlying file, if the
// writer was created with [CreateOutput]. The file is closed even when the
// flush fails.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", w.name)
		}
		w.closer = nil
	}
	return err
}

// AppendRecord appends the output line for (x, dy), newline included.
func AppendRecord(dst []byte, x, dy float64) []byte {
	dst = AppendFloat(dst, x)
	dst = append(dst, '\t')
	dst = AppendFloat(dst, dy)
	return append(dst, '\n')
}

// AppendFloat appends v with six decimals. Non-finite values are written
// as inf, -inf and nan.
func AppendFloat(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	return strconv.AppendFloat(dst, v, 'f', 6, 64)
}
