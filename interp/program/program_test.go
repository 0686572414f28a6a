package program

import "testing"

func label(name string) Instruction {
	return Instruction{Opcode: "LABEL", Args: []Argument{{Kind: ArgLabel, Name: name}}}
}

func TestBuildLabelsUnique(t *testing.T) {
	p := &Program{Instructions: []Instruction{
		label("start"),
		{Opcode: "DEFVAR", Args: []Argument{{Kind: ArgVar, Frame: GF, Name: "x"}}},
		label("end"),
	}}
	labels, err := BuildLabels(p)
	if err != nil {
		t.Fatalf("BuildLabels: %v", err)
	}
	if labels["start"] != 0 || labels["end"] != 2 {
		t.Fatalf("labels = %v", labels)
	}
}

func TestBuildLabelsDuplicate(t *testing.T) {
	p := &Program{Instructions: []Instruction{
		label("L"),
		label("L"),
	}}
	if _, err := BuildLabels(p); err == nil {
		t.Fatal("expected a duplicate-label error")
	}
}
