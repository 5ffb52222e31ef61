package mllp

// Buffer is a growable byte buffer with an explicit read cursor and an
// optional read limit. The decoder repositions the cursor with Skip, Limit
// and Rewind while carving a frame out of the accumulated inbound bytes;
// the encoder uses it as an auto-growing output buffer.
type Buffer struct {
	data []byte
	pos  int
	lim  int // -1 means the limit tracks the end of the data
}

// NewBuffer creates a buffer with the given initial capacity.
// Writes beyond the capacity grow the buffer automatically.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, 0, capacity), lim: -1}
}

// limit returns the effective upper bound of the readable region.
func (b *Buffer) limit() int {
	if b.lim < 0 || b.lim > len(b.data) {
		return len(b.data)
	}
	return b.lim
}

// Write appends p to the buffer, growing it as needed.
// It implements io.Writer and never returns an error.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// PutByte appends a single byte to the buffer.
func (b *Buffer) PutByte(c byte) {
	b.data = append(b.data, c)
}

// Len returns the total number of bytes held, independent of cursor and limit.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Remaining returns the number of readable bytes between the cursor and the limit.
func (b *Buffer) Remaining() int {
	if b.pos >= b.limit() {
		return 0
	}
	return b.limit() - b.pos
}

// Bytes returns the readable region between the cursor and the limit.
// The returned slice aliases the buffer's storage and is only valid until
// the next mutating call.
func (b *Buffer) Bytes() []byte {
	if b.pos >= b.limit() {
		return nil
	}
	return b.data[b.pos:b.limit()]
}

// Skip advances the read cursor by n bytes, clamped to the limit.
func (b *Buffer) Skip(n int) {
	if n < 0 {
		return
	}
	b.pos += n
	if b.pos > b.limit() {
		b.pos = b.limit()
	}
}

// Limit restricts the readable region to end at absolute position n.
// A negative n removes the limit. The cursor is pulled back if it sits
// beyond the new limit.
func (b *Buffer) Limit(n int) {
	if n < 0 {
		b.lim = -1
		return
	}
	if n > len(b.data) {
		n = len(b.data)
	}
	b.lim = n
	if b.pos > n {
		b.pos = n
	}
}

// Rewind moves the read cursor back to the beginning of the buffer.
func (b *Buffer) Rewind() {
	b.pos = 0
}

// Clear discards all content and resets cursor and limit.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
	b.pos = 0
	b.lim = -1
}

// Compact discards everything before the cursor and keeps the rest,
// ignoring any limit. The cursor returns to the beginning and the limit
// is removed. Used to retain the unconsumed tail of a delivery for the
// next decode invocation.
func (b *Buffer) Compact() {
	n := copy(b.data, b.data[b.pos:])
	b.data = b.data[:n]
	b.pos = 0
	b.lim = -1
}
