package mllp

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset identifies the character encoding used to transcode payload text
// to and from wire bytes. The zero value is not usable; obtain one from
// LookupCharset or DefaultCharset.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// LookupCharset resolves a charset by its IANA name (e.g. "UTF-8",
// "ISO-8859-1"). Unresolvable names fail here, at configuration time,
// rather than on first use.
func LookupCharset(name string) (Charset, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return Charset{}, errors.Wrapf(err, "charset %q is not resolvable", name)
	}
	if enc == nil {
		// ianaindex knows the name but carries no implementation for it
		return Charset{}, errors.Errorf("charset %q is not supported", name)
	}
	return Charset{name: name, enc: enc}, nil
}

// DefaultCharset returns UTF-8, the host default for Go programs.
func DefaultCharset() Charset {
	return Charset{name: "UTF-8", enc: unicode.UTF8}
}

// Name returns the charset's IANA name.
func (c Charset) Name() string {
	return c.name
}

// valid reports whether the charset carries an encoding implementation.
func (c Charset) valid() bool {
	return c.enc != nil
}

func (c Charset) newEncoder() *encoding.Encoder {
	return c.enc.NewEncoder()
}

func (c Charset) newDecoder() *encoding.Decoder {
	return c.enc.NewDecoder()
}
