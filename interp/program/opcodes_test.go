package program

import "testing"

func TestSignatureArity(t *testing.T) {
	cases := []struct {
		opcode string
		arity  int
	}{
		{"CREATEFRAME", 0},
		{"RETURN", 0},
		{"BREAK", 0},
		{"DEFVAR", 1},
		{"LABEL", 1},
		{"PUSHS", 1},
		{"MOVE", 2},
		{"READ", 2},
		{"TYPE", 2},
		{"ADD", 3},
		{"JUMPIFEQ", 3},
		{"SETCHAR", 3},
	}
	for _, c := range cases {
		sig, ok := Signature(c.opcode)
		if !ok {
			t.Fatalf("Signature(%s): not found", c.opcode)
		}
		if len(sig) != c.arity {
			t.Errorf("Signature(%s) has arity %d, want %d", c.opcode, len(sig), c.arity)
		}
	}
}

func TestSignatureUnknownOpcode(t *testing.T) {
	if _, ok := Signature("NOPE"); ok {
		t.Fatal("unknown opcode should not resolve")
	}
}

func TestReadUsesTypeRole(t *testing.T) {
	sig, _ := Signature("READ")
	if sig[1] != RoleType {
		t.Fatalf("READ's 2nd argument should be RoleType, got %v", sig[1])
	}
}
