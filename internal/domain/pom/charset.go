package pom

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

var declEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*\bencoding\s*=\s*["']([^"']+)["']`)

// toUTF8 transcodes data to UTF-8 according to its XML declaration. The
// returned encoding is nil when data already is UTF-8.
func toUTF8(data []byte) ([]byte, encoding.Encoding, error) {
	label := declaredEncoding(data)
	if label == "" {
		return data, nil, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, nil, fmt.Errorf("unsupported encoding %q", label)
	}
	if name == "utf-8" {
		return data, nil, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", label, err)
	}
	return decoded, enc, nil
}

// fromUTF8 reverses toUTF8.
func fromUTF8(data []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return data, nil
	}
	return enc.NewEncoder().Bytes(data)
}

func declaredEncoding(data []byte) string {
	m := declEncoding.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m[1]))
}

// utf8Only is the decoder's CharsetReader. scan always receives UTF-8, so a
// supported label passes the input through unchanged and offsets stay exact.
func utf8Only(label string, in io.Reader) (io.Reader, error) {
	if enc, _ := charset.Lookup(label); enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return in, nil
}

// newline returns the line ending used by the first line of data.
func newline(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
