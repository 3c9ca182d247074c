package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// DecodeOptions configures how a census source is read.
type DecodeOptions struct {
	Encoding string // Source text encoding; empty means utf-8
	Source   string // Name used in error messages (path or upload file name)
}

// Decoder reads a census CSV stream whose header matches a Schema.
// Rows are produced lazily; a Decoder can be iterated once.
type Decoder struct {
	reader  *csv.Reader
	counter *CountingReader
	schema  Schema
	specs   map[string]FieldSpec
	index   HeaderIndex
	source  string
}

// NewDecoder reads and validates the header of r against schema.
// Any structural problem with the header is returned as a decode error.
func NewDecoder(r io.Reader, schema Schema, opts DecodeOptions) (*Decoder, error) {
	input, counter, err := WrapInput(r, opts.Encoding)
	if err != nil {
		return nil, decodeError("decode", opts.Source, "", err)
	}

	cr := csv.NewReader(input)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0 // fixed to the header width

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, decodeError("decode", opts.Source, "missing header row", nil)
	}
	if err != nil {
		return nil, decodeError("decode", opts.Source, "unreadable header row", err)
	}

	idx, err := ValidateHeaders(header, schema)
	if err != nil {
		return nil, decodeError("decode", opts.Source, "wrong delimiter or header", err)
	}

	specs := make(map[string]FieldSpec, len(schema.Columns))
	for _, spec := range schema.Columns {
		specs[strings.ToLower(spec.Name)] = spec
	}

	return &Decoder{
		reader:  cr,
		counter: counter,
		schema:  schema,
		specs:   specs,
		index:   idx,
		source:  opts.Source,
	}, nil
}

// BytesRead returns the number of raw source bytes consumed so far.
func (d *Decoder) BytesRead() int64 {
	return d.counter.BytesRead
}

// Rows returns a forward-only sequence of data rows. A malformed record or
// read failure is yielded once as a decode error and ends the sequence.
func (d *Decoder) Rows() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for {
			fields, err := d.reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, decodeError("decode", d.source, "malformed record", err))
				return
			}
			line, _ := d.reader.FieldPos(0)
			if !yield(Row{dec: d, line: line, fields: fields}, nil) {
				return
			}
		}
	}
}

// Row is one decoded data record bound to its header.
type Row struct {
	dec    *Decoder
	line   int
	fields []string
}

// Line returns the 1-based line of the record in the source.
func (r Row) Line() int {
	return r.line
}

// Text returns the cleaned value of column, or "" if the header lacks it.
func (r Row) Text(column string) string {
	raw, _ := r.cell(column)
	return raw
}

// Int parses column as a non-negative integer.
// Thousands separators are accepted. An absent or blank optional column is zero.
func (r Row) Int(column string) (int64, error) {
	raw, ok := r.cell(column)
	if !ok || (raw == "" && !r.required(column)) {
		return 0, nil
	}
	v, err := ParseCount(raw)
	if err != nil {
		return 0, r.cellError(column, FieldInt, err)
	}
	return v, nil
}

// Float parses column as a non-negative number.
// Thousands separators are accepted. An absent or blank optional column is zero.
func (r Row) Float(column string) (float64, error) {
	raw, ok := r.cell(column)
	if !ok || (raw == "" && !r.required(column)) {
		return 0, nil
	}
	v, err := ParseMeasure(raw)
	if err != nil {
		return 0, r.cellError(column, FieldFloat, err)
	}
	return v, nil
}

func (r Row) cell(column string) (string, bool) {
	if r.dec == nil {
		return "", false
	}
	pos, ok := r.dec.index[strings.ToLower(column)]
	if !ok || pos >= len(r.fields) {
		return "", false
	}
	return CleanCell(r.fields[pos]), true
}

func (r Row) required(column string) bool {
	return r.dec.specs[strings.ToLower(column)].Required
}

func (r Row) cellError(column string, ft FieldType, err error) error {
	msg := fmt.Sprintf("line %d: invalid %s in column %q", r.line, fieldTypeName(ft), column)
	return decodeError("decode", r.dec.source, msg, err)
}
