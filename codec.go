// Package mllp implements MLLP (Minimal Lower Layer Protocol) framing for
// text-based health-data messaging over TCP. A frame wraps a text payload
// between a start byte and a two-byte end sequence:
//
//	0x0b <payload bytes in the configured charset> 0x1c 0x0d
//
// The payload itself uses 0x0d (carriage return) as segment separator and
// never contains the end sequence. The codec recognizes complete frames in
// an inbound byte stream and extracts the payload text, and wraps outbound
// payload text into framed, charset-encoded bytes. Charset machinery is
// cached per connection and released on connection teardown.
package mllp

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// MLLP frame markers.
const (
	startMarker byte = 0x0b // 11 decimal
	endMarker1  byte = 0x1c // 28 decimal
	endMarker2  byte = 0x0d // 13 decimal, \r, also the segment separator
)

// Codec frames and transcodes MLLP messages. One codec serves any number
// of connections; each connection's charset encoder and decoder are
// created lazily on first use and cached until Release.
//
// By default Decode reassembles frames split across deliveries. The
// chunked-decode option restores the legacy behavior of treating each
// delivered region as a complete frame.
type Codec struct {
	mu      sync.RWMutex
	charset Charset

	chunked bool
	states  *transcoders
}

// CodecOption configures a Codec.
type CodecOption func(*Codec) error

// CharsetOption sets the payload charset from a charset handle.
func CharsetOption(charset Charset) CodecOption {
	return func(c *Codec) error {
		if !charset.valid() {
			return errors.New("charset has no encoding")
		}
		c.charset = charset
		return nil
	}
}

// CharsetNameOption sets the payload charset by IANA name.
// An unresolvable name fails NewCodec, not the first frame.
func CharsetNameOption(name string) CodecOption {
	return func(c *Codec) error {
		charset, err := LookupCharset(name)
		if err != nil {
			return err
		}
		c.charset = charset
		return nil
	}
}

// ChunkedDecodeOption makes Decode treat every delivered region as a
// complete frame, emitting whatever bytes are present even when the end
// sequence is missing. This matches senders that never split a frame
// across writes; with it enabled the codec performs no reassembly.
func ChunkedDecodeOption() CodecOption {
	return func(c *Codec) error {
		c.chunked = true
		return nil
	}
}

// NewCodec creates a codec with the given options.
// The charset defaults to UTF-8.
func NewCodec(opt ...CodecOption) (*Codec, error) {
	c := &Codec{
		charset: DefaultCharset(),
		states:  newTranscoders(),
	}
	for _, o := range opt {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Charset returns the codec's current charset.
func (c *Codec) Charset() Charset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.charset
}

// SetCharset changes the payload charset. It takes effect for connections
// whose transcoding state is created after the call; connections that
// already processed a frame keep the charset they started with.
func (c *Codec) SetCharset(charset Charset) error {
	if !charset.valid() {
		return errors.New("charset has no encoding")
	}

	c.mu.Lock()
	c.charset = charset
	c.mu.Unlock()
	return nil
}

// SetCharsetName changes the payload charset by IANA name.
// An unresolvable name fails immediately and leaves the charset unchanged.
func (c *Codec) SetCharsetName(name string) error {
	charset, err := LookupCharset(name)
	if err != nil {
		return err
	}
	return c.SetCharset(charset)
}

// Encode converts a payload into one framed MLLP byte sequence, using the
// connection's cached charset encoder (created on first use). Line feeds
// in the payload text are replaced with carriage returns, the protocol's
// segment separator, so payloads produced with platform-style line endings
// stay well formed on the wire.
//
// A nil payload returns ErrInvalidPayload.
func (c *Codec) Encode(connID string, payload Payload) ([]byte, error) {
	if payload == nil {
		return nil, ErrInvalidPayload
	}

	state := c.states.get(connID, c.Charset())

	text, err := payload.text(state.charset)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\n", "\r")

	encoded, err := state.encoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrapf(err, "encode payload as %s", state.charset.Name())
	}

	buf := NewBuffer(len(text) + 3)
	buf.PutByte(startMarker)
	_, _ = buf.Write(encoded)
	buf.PutByte(endMarker1)
	buf.PutByte(endMarker2)
	return buf.Bytes(), nil
}

// Decode scans the buffered inbound region for a frame and emits at most
// one decoded payload text per call. The most recent start marker wins, so
// bytes before it are discarded as noise. A lone 0x1c not followed by 0x0d
// is ordinary payload data.
//
// With a complete frame present, the payload between the start marker and
// the end sequence (markers excluded) is decoded with the connection's
// cached charset decoder, the frame is consumed, and any trailing bytes
// are kept for the next call. Without a complete frame, Decode reports
// ok=false and retains the unconsumed bytes — unless chunked decoding is
// enabled, in which case the present bytes are decoded as-is and the
// buffer is cleared.
//
// On transcoding failure the frame's region is still consumed, so one
// malformed frame never wedges the connection.
func (c *Codec) Decode(connID string, buf *Buffer) (string, bool, error) {
	region := buf.Bytes()
	base := buf.pos

	startPos := base
	end1Pos, endPos := -1, -1
	for i := 0; i < len(region) && endPos < 0; i++ {
		switch region[i] {
		case startMarker:
			startPos = base + i + 1
		case endMarker1:
			if i+1 < len(region) && region[i+1] == endMarker2 {
				end1Pos = base + i
				endPos = base + i + 2
			}
		}
	}

	if endPos < 0 && !c.chunked {
		// No complete frame yet. Drop anything before the most recent
		// start marker and keep the rest for the next delivery.
		buf.Rewind()
		buf.Skip(startPos)
		buf.Compact()
		return "", false, nil
	}

	// Consume the frame region even when decoding fails below.
	defer func() {
		if endPos < 0 {
			buf.Clear()
			return
		}
		buf.Limit(-1)
		buf.Rewind()
		buf.Skip(endPos)
		if c.chunked {
			buf.Clear()
		} else {
			buf.Compact()
		}
	}()

	buf.Rewind()
	buf.Skip(startPos)
	if endPos >= 0 {
		// The end markers are not part of the payload.
		buf.Limit(end1Pos)
	}

	state := c.states.get(connID, c.Charset())
	text, err := state.decoder().Bytes(buf.Bytes())
	if err != nil {
		return "", false, errors.Wrapf(err, "decode payload as %s", state.charset.Name())
	}
	return string(text), true, nil
}

// Release drops the cached transcoding state for a connection.
// Call it when the connection is torn down.
func (c *Codec) Release(connID string) {
	c.states.remove(connID)
}
