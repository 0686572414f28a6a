// Package program defines the decoded, sorted instruction sequence that
// the executor consumes, and the label table built from it.
//
// Arguments are represented as a tagged variant (ArgKind) over a decoded
// Value, a variable reference or a label/type name, converted once at
// load time so that the executor never parses text during dispatch (as
// in the teacher's own Instruction representation in
// vm/bytecode.go, which pre-decodes opcode+operand once at parse time).
package program

import (
	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/value"
)

// Frame identifies one of the three named frames an argument may refer to.
type Frame int

const (
	GF Frame = iota
	LF
	TF
)

// ArgKind distinguishes the shape of a decoded Argument.
type ArgKind int

const (
	// ArgLiteral carries a decoded Value (int/string/bool/nil literal).
	ArgLiteral ArgKind = iota
	// ArgVar carries a Frame + variable name.
	ArgVar
	// ArgLabel carries a label name.
	ArgLabel
	// ArgType carries a requested type name (the 2nd argument of READ).
	ArgType
)

// Argument is one decoded instruction operand.
type Argument struct {
	Kind  ArgKind
	Lit   value.Value
	Frame Frame
	Name  string // variable name (ArgVar), label name (ArgLabel), type name (ArgType)
}

// Instruction is one decoded, positioned IPPcode22 instruction.
type Instruction struct {
	Opcode string // always upper-case
	Args   []Argument
	Order  int // the original XML order= value, retained for diagnostics
}

// Program is the dense, order-sorted instruction sequence produced by the
// loader. Label targets resolve to indices into this slice, never to the
// original order= values (spec.md §9: "program ordering and sorting").
type Program struct {
	Instructions []Instruction
	Name         string
	Description  string
}

// Labels maps a label name to the index of its LABEL instruction.
type Labels map[string]int

// BuildLabels performs the single forward pass of spec.md §4.2: every
// LABEL instruction is inserted into the table; a second insertion of the
// same name is a Semantics error.
func BuildLabels(p *Program) (Labels, error) {
	labels := make(Labels, len(p.Instructions))
	for idx, ins := range p.Instructions {
		if ins.Opcode != "LABEL" {
			continue
		}
		name := ins.Args[0].Name
		if _, dup := labels[name]; dup {
			return nil, ipperr.Newf(ipperr.Semantics, "duplicate label %q at instruction %d", name, idx)
		}
		labels[name] = idx
	}
	return labels, nil
}
