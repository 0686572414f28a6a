package ipperr

import "testing"

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		code int
	}{
		{Params, 10},
		{FileOpen, 11},
		{XMLFormat, 31},
		{XMLStructure, 32},
		{Semantics, 52},
		{Operands, 53},
		{VarMissing, 54},
		{FrameMissing, 55},
		{MissingValue, 56},
		{OperandValue, 57},
		{StringError, 58},
		{Internal, 99},
	}
	for _, c := range cases {
		if got := c.kind.ExitCode(); got != c.code {
			t.Errorf("%v.ExitCode() = %d, want %d", c.kind, got, c.code)
		}
	}
}

func TestWrapPreservesKind(t *testing.T) {
	inner := Newf(Semantics, "duplicate label %q", "L")
	outer := Wrap(inner, Internal, "loading program")
	if outer.Kind != Semantics {
		t.Fatalf("Wrap should preserve the original Kind, got %v", outer.Kind)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, Internal, "x") != nil {
		t.Fatal("Wrap(nil, ...) should return nil")
	}
}

func TestAs(t *testing.T) {
	err := New(VarMissing, "x not declared")
	ie, ok := As(err)
	if !ok || ie.Kind != VarMissing {
		t.Fatalf("As() = %v, %v", ie, ok)
	}
	if _, ok := As(nil); ok {
		t.Fatal("As(nil) should report ok=false")
	}
}
