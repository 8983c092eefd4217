package batch

import (
	"strings"
	"testing"
)

func TestFaultKindString(t *testing.T) {
	if got := FaultSlotsExhausted.String(); got != "texture slots exhausted" {
		t.Errorf("unexpected name %q", got)
	}
	if got := FaultKind(200).String(); got != "FaultKind(200)" {
		t.Errorf("unexpected name %q", got)
	}
}

func TestFaultErrorIncludesIdentities(t *testing.T) {
	dc := DrawCall{Shader: 4, Mesh: 5, Entity: 6}
	f := &Fault{Kind: FaultMissingShader, Call: &dc, Detail: "not registered"}
	msg := f.Error()
	if !strings.HasPrefix(msg, "batch: missing shader") {
		t.Errorf("unexpected message %q", msg)
	}
	if verboseFaults && !strings.Contains(msg, "shader=4") {
		t.Errorf("expected identities in debug builds, got %q", msg)
	}
	if !verboseFaults && strings.Contains(msg, "shader=4") {
		t.Errorf("expected identities hidden in release builds, got %q", msg)
	}
}

func TestAsFault(t *testing.T) {
	if _, ok := AsFault("boom"); ok {
		t.Error("string panic value reported as fault")
	}
	if _, ok := AsFault(nil); ok {
		t.Error("nil reported as fault")
	}
	f := &Fault{Kind: FaultEmptyQueue}
	if got, ok := AsFault(f); !ok || got != f {
		t.Error("expected fault to round-trip")
	}
}
