package batch

import (
	"fmt"
	"strings"
)

// FaultKind classifies a violated invariant.
type FaultKind uint8

const (
	// FaultEmptyQueue: a call was popped from an exhausted queue inside a
	// render session.
	FaultEmptyQueue FaultKind = iota + 1

	// FaultSlotsExhausted: every texture unit was already refreshed in the
	// current generation and another texture was requested.
	FaultSlotsExhausted

	// FaultMissingShader: a queued shader identity is not in the registry.
	FaultMissingShader

	// FaultMissingMesh: a queued mesh identity is not in the registry.
	FaultMissingMesh

	// FaultMissingMaterial: a queued entity has no material.
	FaultMissingMaterial

	// FaultMissingTransform: a queued entity has no model matrix.
	FaultMissingTransform

	// FaultStaleStep: a pipeline step was used after it had transitioned.
	FaultStaleStep
)

var faultKindNames = [...]string{
	FaultEmptyQueue:       "empty queue",
	FaultSlotsExhausted:   "texture slots exhausted",
	FaultMissingShader:    "missing shader",
	FaultMissingMesh:      "missing mesh",
	FaultMissingMaterial:  "missing material",
	FaultMissingTransform: "missing transform",
	FaultStaleStep:        "stale pipeline step",
}

// String returns the string representation of the kind.
func (k FaultKind) String() string {
	if int(k) < len(faultKindNames) && faultKindNames[k] != "" {
		return faultKindNames[k]
	}
	return fmt.Sprintf("FaultKind(%d)", uint8(k))
}

// Fault describes a broken invariant of the binding core. Faults are raised
// with panic and indicate a bug in a collaborator, never a runtime condition
// to retry.
type Fault struct {
	Kind FaultKind

	// Call is the draw call being processed, if any.
	Call *DrawCall

	// Texture is the texture involved in a slot fault.
	Texture TextureID

	// Detail is free-form context.
	Detail string
}

// Error implements error. Identity details are included unless the module
// is built with the release tag.
func (f *Fault) Error() string {
	var b strings.Builder
	b.WriteString("batch: ")
	b.WriteString(f.Kind.String())
	if verboseFaults {
		if f.Call != nil {
			b.WriteString(" at ")
			b.WriteString(f.Call.String())
		}
		if f.Kind == FaultSlotsExhausted {
			fmt.Fprintf(&b, " (texture %d)", f.Texture)
		}
		if f.Detail != "" {
			b.WriteString(": ")
			b.WriteString(f.Detail)
		}
	}
	return b.String()
}

// Throw logs the fault and panics with it.
func Throw(f *Fault) {
	Logger().Error("render fault", "kind", f.Kind.String(), "err", f.Error())
	panic(f)
}

// ThrowCall raises a fault of the given kind for a draw call.
func ThrowCall(kind FaultKind, dc DrawCall, detail string) {
	Throw(&Fault{Kind: kind, Call: &dc, Detail: detail})
}

// AsFault extracts a *Fault from a recovered panic value.
func AsFault(v any) (*Fault, bool) {
	f, ok := v.(*Fault)
	return f, ok
}
