package mllp

import (
	"bytes"
	"testing"
)

func TestBuffer_WriteAndGrow(t *testing.T) {
	buf := NewBuffer(2)

	n, err := buf.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}

	buf.PutByte('!')

	if buf.Len() != 6 {
		t.Errorf("Len = %d, want 6", buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), []byte("hello!")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "hello!")
	}
}

func TestBuffer_SkipAndRemaining(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abcdef"))

	buf.Skip(2)
	if buf.Remaining() != 4 {
		t.Errorf("Remaining = %d, want 4", buf.Remaining())
	}
	if !bytes.Equal(buf.Bytes(), []byte("cdef")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "cdef")
	}

	// skipping past the end clamps to the limit
	buf.Skip(100)
	if buf.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", buf.Remaining())
	}
	if buf.Bytes() != nil {
		t.Errorf("Bytes = %q, want nil", buf.Bytes())
	}
}

func TestBuffer_Limit(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abcdef"))

	buf.Skip(1)
	buf.Limit(4)

	if !bytes.Equal(buf.Bytes(), []byte("bcd")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "bcd")
	}

	// negative limit removes the restriction
	buf.Limit(-1)
	if !bytes.Equal(buf.Bytes(), []byte("bcdef")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "bcdef")
	}

	// a limit beyond the data is clamped
	buf.Limit(100)
	if buf.Remaining() != 5 {
		t.Errorf("Remaining = %d, want 5", buf.Remaining())
	}
}

func TestBuffer_LimitPullsBackCursor(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abcdef"))

	buf.Skip(5)
	buf.Limit(3)

	if buf.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", buf.Remaining())
	}

	buf.Rewind()
	if !bytes.Equal(buf.Bytes(), []byte("abc")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "abc")
	}
}

func TestBuffer_Rewind(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abc"))

	buf.Skip(3)
	buf.Rewind()

	if !bytes.Equal(buf.Bytes(), []byte("abc")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "abc")
	}
}

func TestBuffer_Clear(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abc"))
	buf.Skip(1)
	buf.Limit(2)

	buf.Clear()

	if buf.Len() != 0 {
		t.Errorf("Len = %d, want 0", buf.Len())
	}
	if buf.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", buf.Remaining())
	}

	// the buffer is reusable after Clear
	buf.Write([]byte("xyz"))
	if !bytes.Equal(buf.Bytes(), []byte("xyz")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "xyz")
	}
}

func TestBuffer_Compact(t *testing.T) {
	buf := NewBuffer(0)
	buf.Write([]byte("abcdef"))

	buf.Skip(4)
	buf.Limit(5) // Compact ignores the limit
	buf.Compact()

	if buf.Len() != 2 {
		t.Errorf("Len = %d, want 2", buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), []byte("ef")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "ef")
	}

	// more data appends after the retained tail
	buf.Write([]byte("gh"))
	if !bytes.Equal(buf.Bytes(), []byte("efgh")) {
		t.Errorf("Bytes = %q, want %q", buf.Bytes(), "efgh")
	}
}
