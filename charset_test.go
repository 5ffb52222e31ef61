package mllp

import (
	"testing"
)

func TestLookupCharset(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "UTF-8"},
		{name: "ISO-8859-1"},
		{name: "US-ASCII"},
		{name: "windows-1252"},
		{name: "no-such-charset", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := LookupCharset(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LookupCharset(%q) succeeded, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupCharset(%q) failed: %v", tt.name, err)
			}
			if !cs.valid() {
				t.Errorf("LookupCharset(%q) returned charset without encoding", tt.name)
			}
			if cs.Name() != tt.name {
				t.Errorf("Name = %q, want %q", cs.Name(), tt.name)
			}
		})
	}
}

func TestDefaultCharset(t *testing.T) {
	cs := DefaultCharset()

	if cs.Name() != "UTF-8" {
		t.Errorf("Name = %q, want UTF-8", cs.Name())
	}
	if !cs.valid() {
		t.Error("default charset has no encoding")
	}
}

func TestCharset_EncoderDecoderIndependent(t *testing.T) {
	cs, err := LookupCharset("ISO-8859-1")
	if err != nil {
		t.Fatalf("LookupCharset failed: %v", err)
	}

	if cs.newEncoder() == cs.newEncoder() {
		t.Error("newEncoder returned a shared instance")
	}
	if cs.newDecoder() == cs.newDecoder() {
		t.Error("newDecoder returned a shared instance")
	}
}
