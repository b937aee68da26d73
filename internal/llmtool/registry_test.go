package llmtool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestRegistry_SpecsKeepRegistrationOrder(t *testing.T) {
	reg, err := NewRegistry(&fakeTool{name: "b"}, &fakeTool{name: "a"}, &fakeTool{name: "c"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	specs := reg.Specs()
	if len(specs) != 3 || specs[0].Name != "b" || specs[1].Name != "a" || specs[2].Name != "c" {
		t.Fatalf("unexpected order: %+v", specs)
	}
	names := reg.Names()
	if names[0] != "b" || names[2] != "c" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestRegistry_RejectsDuplicatesAndBadSchemas(t *testing.T) {
	if _, err := NewRegistry(&fakeTool{name: "a"}, &fakeTool{name: "a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := NewRegistry(&fakeTool{name: "a", schema: `{"type": 12}`}); err == nil {
		t.Fatalf("expected schema error")
	}
	if _, err := NewRegistry(&fakeTool{name: " "}); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestRegistry_CallUnknown(t *testing.T) {
	reg, _ := NewRegistry()
	_, err := reg.Call(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestDecodeArgs_Strict(t *testing.T) {
	var in struct {
		Info string `json:"info"`
	}
	if err := DecodeArgs(json.RawMessage(`{"info":"x"}`), &in); err != nil || in.Info != "x" {
		t.Fatalf("decode: %v %+v", err, in)
	}
	if err := DecodeArgs(json.RawMessage(`{"info":"x","other":1}`), &in); !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
}
