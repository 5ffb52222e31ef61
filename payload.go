package mllp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidPayload is returned when Encode is called with a nil payload.
// This is always a caller error and is never silently skipped.
var ErrInvalidPayload = errors.New("payload to encode is nil")

// Payload is an outbound message body. The set of implementations is
// closed: Raw for bytes already in the wire charset, Text for plain
// strings, and Message for structured objects with an external converter.
type Payload interface {
	// text converts the payload to the protocol text that goes between
	// the frame markers, before segment-separator normalization.
	text(charset Charset) (string, error)
}

type rawPayload []byte

// Raw wraps bytes that are already text in the configured charset.
// They are reinterpreted as a string using that charset before framing.
func Raw(b []byte) Payload {
	return rawPayload(b)
}

func (p rawPayload) text(charset Charset) (string, error) {
	// A fresh decoder: the connection's cached decoder is inbound-only
	// and must not see outbound bytes.
	s, err := charset.newDecoder().String(string(p))
	if err != nil {
		return "", errors.Wrapf(err, "decode raw payload as %s", charset.Name())
	}
	return s, nil
}

type textPayload string

// Text wraps a plain string payload.
func Text(s string) Payload {
	return textPayload(s)
}

func (p textPayload) text(Charset) (string, error) {
	return string(p), nil
}

type messagePayload struct {
	v       any
	marshal func(any) (string, error)
}

// Message wraps a structured message object together with the converter
// that renders it as protocol text. A nil converter falls back to the
// object's generic textual representation.
func Message(v any, marshal func(any) (string, error)) Payload {
	return messagePayload{v: v, marshal: marshal}
}

func (p messagePayload) text(Charset) (string, error) {
	if p.marshal == nil {
		return fmt.Sprint(p.v), nil
	}
	s, err := p.marshal(p.v)
	if err != nil {
		return "", errors.Wrap(err, "convert message payload")
	}
	return s, nil
}
