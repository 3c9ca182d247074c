package core

// streaming.go normalizes raw census input before it reaches the CSV reader.
//
// Every source is wrapped so the decoder always sees clean UTF-8:
//
//   - utf-8 sources have a leading BOM stripped and invalid sequences replaced with U+FFFD
//   - latin1 and windows-1252 sources are transcoded to UTF-8
//   - a CountingReader on the outside tracks bytes consumed for logging
//
// Use WrapInput to apply the transforms in the correct order.

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// lookupEncoding resolves an encoding name. The empty string means utf-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8BOM, nil
	case EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unsupported input encoding %q", name)
}

// ValidEncoding reports whether name is an accepted input encoding.
func ValidEncoding(name string) bool {
	_, err := lookupEncoding(name)
	return err == nil
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// WrapInput decodes r from the named encoding into UTF-8 and counts the raw
// bytes consumed. The counter sits below the transcoder so BytesRead reflects
// the size of the source, not the decoded text.
func WrapInput(r io.Reader, enc string) (io.Reader, *CountingReader, error) {
	e, err := lookupEncoding(enc)
	if err != nil {
		return nil, nil, err
	}
	counter := &CountingReader{reader: r}
	return transform.NewReader(counter, e.NewDecoder()), counter, nil
}
