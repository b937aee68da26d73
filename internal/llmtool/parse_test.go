package llmtool

import (
	"encoding/json"
	"testing"

	llmclient "reactagent/internal/llmClient"
)

func TestExtract_InlineCall(t *testing.T) {
	text := "Sure, saving that.\n<function=storeInfo {\"info\": \"x\"}>\nAnything else?"
	ex := Extract(text)
	if len(ex.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ex.Calls))
	}
	call := ex.Calls[0]
	if call.Name != "storeInfo" || !call.Inline || call.ID == "" {
		t.Fatalf("unexpected call: %+v", call)
	}
	var args map[string]string
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		t.Fatalf("arguments: %v", err)
	}
	if args["info"] != "x" || len(args) != 1 {
		t.Fatalf("unexpected args: %v", args)
	}
	if ex.Noise != "Sure, saving that.\nAnything else?" {
		t.Fatalf("unexpected noise: %q", ex.Noise)
	}
}

func TestExtract_MalformedArgumentsAreNoise(t *testing.T) {
	text := "<function=storeInfo {\"info\": x}>"
	ex := Extract(text)
	if len(ex.Calls) != 0 {
		t.Fatalf("expected no calls, got %+v", ex.Calls)
	}
	if ex.Noise != text {
		t.Fatalf("full text must be preserved as noise, got %q", ex.Noise)
	}
}

func TestExtract_WhitespaceVariantsAndMultipleCalls(t *testing.T) {
	text := "<function = storeInfo {\"info\":\"a\"} >\n<function=searchRepositories{\"username\":\"johndoe\"}>"
	ex := Extract(text)
	if len(ex.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(ex.Calls))
	}
	if ex.Calls[0].Name != "storeInfo" || ex.Calls[1].Name != "searchRepositories" {
		t.Fatalf("order not preserved: %+v", ex.Calls)
	}
	if ex.Noise != "" {
		t.Fatalf("expected empty noise, got %q", ex.Noise)
	}
}

func TestExtract_PlainTextHasNoCalls(t *testing.T) {
	ex := Extract("What is the purpose of the website?")
	if len(ex.Calls) != 0 {
		t.Fatalf("expected no calls")
	}
	if ex.Noise != "What is the purpose of the website?" {
		t.Fatalf("unexpected noise: %q", ex.Noise)
	}
}

func TestExtract_NonObjectLiteralIsNoise(t *testing.T) {
	ex := Extract(`<function=storeInfo {"info"}>`)
	if len(ex.Calls) != 0 {
		t.Fatalf("expected no calls, got %+v", ex.Calls)
	}
}

func TestFromToolCalls(t *testing.T) {
	if got := FromToolCalls(nil); got != nil {
		t.Fatalf("expected nil for no calls, got %+v", got)
	}
	got := FromToolCalls([]llmclient.ToolCall{
		{ID: "c1", Name: "runProject", Arguments: ""},
		{ID: "c2", Name: "storeInfo", Arguments: `{"info":"x"}`},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(got))
	}
	if string(got[0].Arguments) != "{}" || got[0].Inline {
		t.Fatalf("unexpected first invocation: %+v", got[0])
	}
	if got[1].ID != "c2" || string(got[1].Arguments) != `{"info":"x"}` {
		t.Fatalf("unexpected second invocation: %+v", got[1])
	}
}
