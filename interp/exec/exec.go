// Package exec implements the IPPcode22 executor: frame and stack state,
// the fetch/dispatch loop and every opcode handler (SPEC_FULL.md §4.4).
//
// The dispatch loop follows the teacher's own vm/core.go shape: a flat
// switch over the current instruction, one unconditional ip++ at the
// bottom of the loop, and jump handlers that set ip to target-1 so the
// unconditional increment lands exactly on target. RETURN, JUMP, CALL
// and JUMPIFEQ/JUMPIFNEQ all rely on this.
package exec

import (
	"fmt"

	"github.com/AdamBalu/IPP/interp/ioadapt"
	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/value"
)

// ExitSignal is returned by Run when an EXIT instruction terminates the
// program normally. It is deliberately not an *ipperr.Error: EXIT is not
// a member of the closed error taxonomy, it is a program-requested clean
// termination with an arbitrary code in [0,49].
type ExitSignal struct {
	Code int
}

func (e *ExitSignal) Error() string { return fmt.Sprintf("exit %d", e.Code) }

// Interpreter holds all executor state: the program under execution, the
// instruction pointer, the three named frames, the three stacks, and the
// I/O adapter used by READ/WRITE/DPRINT/BREAK.
type Interpreter struct {
	prog   *program.Program
	labels program.Labels

	ip            int
	executedCount int64

	gf *value.Frame
	lf *value.Frame
	tf *value.Frame
	fs []*value.Frame
	cs []int
	ds []value.Value

	in  *ioadapt.Input
	out *ioadapt.Output
}

// New returns an Interpreter ready to run prog, with GF pre-created (GF
// exists for the whole program lifetime, spec.md §3 frame lifecycle).
func New(prog *program.Program, labels program.Labels, in *ioadapt.Input, out *ioadapt.Output) *Interpreter {
	return &Interpreter{
		prog:   prog,
		labels: labels,
		gf:     value.NewFrame(),
		in:     in,
		out:    out,
	}
}

// ExecutedCount returns the number of instructions dispatched so far,
// exposed for the optional -stats diagnostic (SPEC_FULL.md §5.3).
func (i *Interpreter) ExecutedCount() int64 { return i.executedCount }

// Run executes the program from instruction 0 until it falls off the end
// (implicit successful termination) or an instruction signals otherwise.
// A non-nil *ExitSignal reports a user-requested EXIT; any other non-nil
// error is an *ipperr.Error.
func (i *Interpreter) Run() error {
	for i.ip < len(i.prog.Instructions) {
		ins := i.prog.Instructions[i.ip]
		if err := i.dispatch(ins); err != nil {
			return err
		}
		i.ip++
		i.executedCount++
	}
	return nil
}

func (i *Interpreter) dispatch(ins program.Instruction) error {
	switch ins.Opcode {
	case "CREATEFRAME":
		i.tf = value.NewFrame()
		return nil
	case "PUSHFRAME":
		if i.tf == nil {
			return ipperr.New(ipperr.FrameMissing, "PUSHFRAME: no temporary frame")
		}
		i.fs = append(i.fs, i.tf)
		i.lf = i.tf
		i.tf = nil
		return nil
	case "POPFRAME":
		if len(i.fs) == 0 {
			return ipperr.New(ipperr.FrameMissing, "POPFRAME: frame stack is empty")
		}
		top := i.fs[len(i.fs)-1]
		i.fs = i.fs[:len(i.fs)-1]
		i.tf = top
		if len(i.fs) > 0 {
			i.lf = i.fs[len(i.fs)-1]
		} else {
			i.lf = nil
		}
		return nil
	case "DEFVAR":
		return i.opDefvar(ins.Args[0])
	case "CALL":
		idx, err := i.resolveLabel(ins.Args[0])
		if err != nil {
			return err
		}
		i.cs = append(i.cs, i.ip+1)
		i.ip = idx - 1
		return nil
	case "RETURN":
		if len(i.cs) == 0 {
			return ipperr.New(ipperr.MissingValue, "RETURN: call stack is empty")
		}
		popped := i.cs[len(i.cs)-1]
		i.cs = i.cs[:len(i.cs)-1]
		i.ip = popped - 1
		return nil
	case "JUMP":
		idx, err := i.resolveLabel(ins.Args[0])
		if err != nil {
			return err
		}
		i.ip = idx - 1
		return nil
	case "JUMPIFEQ", "JUMPIFNEQ":
		return i.opJumpIf(ins)
	case "LABEL":
		return nil
	case "EXIT":
		return i.opExit(ins.Args[0])
	case "BREAK":
		i.dumpState()
		return nil
	case "PUSHS":
		v, err := i.evalSymb(ins.Args[0])
		if err != nil {
			return err
		}
		i.ds = append(i.ds, v)
		return nil
	case "POPS":
		v, err := i.popDS()
		if err != nil {
			return err
		}
		return i.setVar(ins.Args[0], v)
	case "MOVE":
		v, err := i.evalSymb(ins.Args[1])
		if err != nil {
			return err
		}
		return i.setVar(ins.Args[0], v)
	case "ADD", "SUB", "MUL", "IDIV":
		return i.opArith(ins)
	case "LT", "GT", "EQ":
		return i.opRelational(ins)
	case "AND", "OR", "NOT":
		return i.opBoolean(ins)
	case "CONCAT":
		return i.opConcat(ins)
	case "STRLEN":
		return i.opStrlen(ins)
	case "GETCHAR":
		return i.opGetchar(ins)
	case "SETCHAR":
		return i.opSetchar(ins)
	case "STRI2INT":
		return i.opStri2int(ins)
	case "INT2CHAR":
		return i.opInt2char(ins)
	case "TYPE":
		return i.opType(ins)
	case "READ":
		return i.opRead(ins)
	case "WRITE":
		return i.opWrite(ins)
	case "DPRINT":
		return i.opDprint(ins)
	default:
		return ipperr.Newf(ipperr.Internal, "unhandled opcode %s", ins.Opcode)
	}
}

func (i *Interpreter) resolveLabel(arg program.Argument) (int, error) {
	idx, ok := i.labels[arg.Name]
	if !ok {
		return 0, ipperr.Newf(ipperr.Semantics, "undefined label %q", arg.Name)
	}
	return idx, nil
}

func (i *Interpreter) opJumpIf(ins program.Instruction) error {
	a, err := i.evalSymb(ins.Args[1])
	if err != nil {
		return err
	}
	b, err := i.evalSymb(ins.Args[2])
	if err != nil {
		return err
	}
	eq, ok := a.Eq(b)
	if !ok {
		return ipperr.Newf(ipperr.Operands, "%s: operand type mismatch", ins.Opcode)
	}
	take := eq
	if ins.Opcode == "JUMPIFNEQ" {
		take = !eq
	}
	if !take {
		return nil
	}
	idx, err := i.resolveLabel(ins.Args[0])
	if err != nil {
		return err
	}
	i.ip = idx - 1
	return nil
}

func (i *Interpreter) opExit(arg program.Argument) error {
	v, err := i.evalSymb(arg)
	if err != nil {
		return err
	}
	if v.Tag() != value.TagInt {
		return ipperr.New(ipperr.Operands, "EXIT: operand must be an int")
	}
	n := v.Int()
	if n < 0 || n > 49 {
		return ipperr.Newf(ipperr.OperandValue, "EXIT: code %d out of range [0,49]", n)
	}
	return &ExitSignal{Code: int(n)}
}

func (i *Interpreter) popDS() (value.Value, error) {
	if len(i.ds) == 0 {
		return value.Value{}, ipperr.New(ipperr.MissingValue, "data stack is empty")
	}
	v := i.ds[len(i.ds)-1]
	i.ds = i.ds[:len(i.ds)-1]
	return v, nil
}
