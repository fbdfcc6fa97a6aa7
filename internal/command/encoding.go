package command

import (
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used for stdin text and captured output unless a
// Command is given another one.
const DefaultEncoding = "utf-8"

// lookupEncoding resolves an encoding label such as "utf-8", "latin1" or
// "shift_jis". WHATWG labels are tried first, then IANA names.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, &ConfigError{Spec: name, Err: ErrUnknownEncoding}
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// encodeReader converts UTF-8 text read from r into enc.
func encodeReader(enc encoding.Encoding, r io.Reader) io.Reader {
	if isUTF8(enc) {
		return r
	}
	return transform.NewReader(r, enc.NewEncoder())
}

// decodeBytes converts captured bytes in enc into a UTF-8 string.
func decodeBytes(enc encoding.Encoding, b []byte) (string, error) {
	if isUTF8(enc) {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), err
	}
	return string(out), nil
}
