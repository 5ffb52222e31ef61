package mllp

import (
	"sync"

	"golang.org/x/text/encoding"
)

// transcoder holds the cached charset encoder and decoder for a single
// connection. Both are created lazily on first use so a receive-only
// connection never builds an encoder and vice versa. Charset machinery can
// carry multi-byte continuation state, so instances are never shared
// across connections.
//
// A single connection's operations are not invoked concurrently, so the
// fields need no locking.
type transcoder struct {
	charset Charset

	enc *encoding.Encoder
	dec *encoding.Decoder
}

func (t *transcoder) encoder() *encoding.Encoder {
	if t.enc == nil {
		t.enc = t.charset.newEncoder()
	}
	return t.enc
}

func (t *transcoder) decoder() *encoding.Decoder {
	if t.dec == nil {
		t.dec = t.charset.newDecoder()
	}
	return t.dec
}

// transcoders maps connection identifiers to their cached transcoding
// state. Distinct connections may be driven from different goroutines, so
// only the map itself is guarded.
type transcoders struct {
	mu sync.RWMutex
	m  map[string]*transcoder
}

func newTranscoders() *transcoders {
	return &transcoders{m: make(map[string]*transcoder)}
}

// get returns the transcoding state for the given connection, creating it
// with the given charset if the connection has none yet. A later charset
// change on the codec does not affect state that already exists.
func (s *transcoders) get(id string, charset Charset) *transcoder {
	s.mu.RLock()
	t, ok := s.m[id]
	s.mu.RUnlock()
	if ok {
		return t
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok = s.m[id]; ok {
		return t
	}
	t = &transcoder{charset: charset}
	s.m[id] = t
	return t
}

// remove drops the cached state for the given connection.
func (s *transcoders) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, id)
}

// size returns the number of connections with cached state.
func (s *transcoders) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.m)
}
