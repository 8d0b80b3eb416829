// Package list provides a streaming reader for formula list files: one
// formula per line, an optional tab-separated name, '#' comments and
// blank lines ignored.
package list

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/formula"
)

// Record is one parsed line. Err carries the parse failure when the
// formula text was rejected; Formula is nil in that case.
type Record struct {
	Line    int
	Name    string
	Input   string
	Formula *formula.Formula
	Err     error
}

// Reader provides streaming access to formula list files.
type Reader struct {
	scanner *bufio.Scanner
	cfg     *formula.Config
	lineNum int
	current *Record
	err     error
}

// NewReader creates a reader that parses each line with cfg. A nil cfg
// uses the default parser configuration.
func NewReader(r io.Reader, cfg *formula.Config) *Reader {
	if cfg == nil {
		cfg = &formula.Config{}
	}
	return &Reader{
		scanner: bufio.NewScanner(r),
		cfg:     cfg,
	}
}

// Next advances to the next record. Returns false when the input is
// exhausted or reading failed.
func (r *Reader) Next() bool {
	r.current = nil

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec := &Record{Line: r.lineNum, Input: line}
		if input, name, ok := strings.Cut(line, "\t"); ok {
			rec.Input = strings.TrimSpace(input)
			rec.Name = strings.TrimSpace(name)
		}

		f, err := r.cfg.Parse(rec.Input)
		if err != nil {
			rec.Err = errors.Wrapf(err, "line %d", rec.Line)
		} else {
			rec.Formula = f
		}

		r.current = rec
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = errors.Wrap(err, "reading formula list")
	}
	return false
}

// Record returns the current record.
func (r *Reader) Record() *Record {
	return r.current
}

// Err returns any I/O error encountered during reading.
func (r *Reader) Err() error {
	return r.err
}
