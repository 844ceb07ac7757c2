package codec

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	var gotData []byte
	c := New("test", func(data []byte, v any) error {
		gotData = data
		*(v.(*string)) = "decoded"
		return nil
	})

	if got := c.Name(); got != "test" {
		t.Errorf("Name() = %q, want %q", got, "test")
	}

	var out string
	if err := c.Decode([]byte("payload"), &out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(gotData) != "payload" {
		t.Errorf("decode func received %q, want %q", gotData, "payload")
	}
	if out != "decoded" {
		t.Errorf("decoded value = %q, want %q", out, "decoded")
	}
}

func TestNew_ErrorPassthrough(t *testing.T) {
	wantErr := errors.New("boom")
	c := New("failing", func(data []byte, v any) error {
		return wantErr
	})

	var out int
	if err := c.Decode(nil, &out); !errors.Is(err, wantErr) {
		t.Errorf("Decode() error = %v, want %v", err, wantErr)
	}
}
