package mllp

import (
	"errors"
	"testing"
)

func TestRawPayload(t *testing.T) {
	iso, err := LookupCharset("ISO-8859-1")
	if err != nil {
		t.Fatalf("LookupCharset failed: %v", err)
	}

	// 0xE9 is é in ISO-8859-1
	text, err := Raw([]byte{'c', 'a', 'f', 0xe9}).text(iso)
	if err != nil {
		t.Fatalf("text failed: %v", err)
	}
	if text != "café" {
		t.Errorf("text = %q, want %q", text, "café")
	}
}

func TestTextPayload(t *testing.T) {
	text, err := Text("hello").text(DefaultCharset())
	if err != nil {
		t.Fatalf("text failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("text = %q, want %q", text, "hello")
	}
}

func TestMessagePayload(t *testing.T) {
	type observation struct {
		code  string
		value string
	}

	marshal := func(v any) (string, error) {
		o, ok := v.(observation)
		if !ok {
			return "", errors.New("not an observation")
		}
		return "OBX|1|ST|" + o.code + "||" + o.value, nil
	}

	text, err := Message(observation{code: "HR", value: "72"}, marshal).text(DefaultCharset())
	if err != nil {
		t.Fatalf("text failed: %v", err)
	}
	if text != "OBX|1|ST|HR||72" {
		t.Errorf("text = %q, want %q", text, "OBX|1|ST|HR||72")
	}
}

func TestMessagePayload_ConverterError(t *testing.T) {
	marshal := func(v any) (string, error) {
		return "", errors.New("boom")
	}

	_, err := Message(struct{}{}, marshal).text(DefaultCharset())
	if err == nil {
		t.Fatal("expected converter error")
	}
}

func TestMessagePayload_GenericFallback(t *testing.T) {
	text, err := Message(42, nil).text(DefaultCharset())
	if err != nil {
		t.Fatalf("text failed: %v", err)
	}
	if text != "42" {
		t.Errorf("text = %q, want %q", text, "42")
	}
}
