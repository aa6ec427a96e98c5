// Package csvio reads delimited text files into tables.
//
// Lines are split on a plain separator string: quoting and escaping are not
// interpreted, so a separator inside a field always starts a new field.
package csvio

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	fblock "github.com/YuukanOO/FBlock"
	"github.com/YuukanOO/FBlock/components/table"
)

// Context keys written by Reader.
const (
	KeySource = "csvio.source"
	KeyRows   = "csvio.rows"
)

// DefaultSeparator is the field separator used when none is configured.
const DefaultSeparator = ","

// ErrShortRow is returned when a line has fewer fields than the table has
// columns.
var ErrShortRow = errors.New("row has fewer fields than columns")

// Reader is a component turning the path of a delimited text file into a
// table.
//
// The number of columns is taken from the first line. With a header, that
// line names the columns and is not part of the rows. Without one, the
// columns are named Column1..N and the first line is the first row. Fields
// beyond the column count are dropped.
type Reader struct {
	header    bool
	separator string
}

// Option configures a Reader.
type Option func(*Reader)

// WithHeader sets whether the first line holds the column names.
func WithHeader(header bool) Option {
	return func(r *Reader) {
		r.header = header
	}
}

// WithSeparator sets the field separator. An empty separator keeps the
// default.
func WithSeparator(separator string) Option {
	return func(r *Reader) {
		if separator != "" {
			r.separator = separator
		}
	}
}

// NewReader creates a Reader, headerless and comma separated by default.
func NewReader(opts ...Option) *Reader {
	r := &Reader{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements fblock.Component.
func (*Reader) Name() fblock.Name {
	return "csvio.read"
}

// Process implements fblock.Component. A missing file yields an error
// matching os.ErrNotExist.
func (r *Reader) Process(jc *fblock.Context, path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tbl *table.Table
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Split(scanner.Text(), r.separator)

		if tbl == nil {
			if r.header {
				tbl = table.New(fields...)
				continue
			}
			tbl = table.New(table.DefaultColumns(len(fields))...)
		}

		if len(fields) < tbl.Width() {
			return nil, errors.Wrapf(ErrShortRow, "%s:%d: got %d fields, want %d", path, line, len(fields), tbl.Width())
		}
		if err := tbl.Append(fields[:tbl.Width()]); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	if tbl == nil {
		tbl = table.New()
	}

	if jc != nil {
		jc.Set(KeySource, path)
		jc.Set(KeyRows, tbl.Len())
	}
	return tbl, nil
}
