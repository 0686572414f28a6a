package exec

import (
	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/value"
)

// frameFor resolves which *value.Frame a GF/LF/TF reference currently
// names. LF and TF may not exist (no frame pushed yet / no CREATEFRAME
// issued yet), which is a FrameMissing error (spec.md invariant I1).
func (i *Interpreter) frameFor(fr program.Frame) (*value.Frame, error) {
	switch fr {
	case program.GF:
		return i.gf, nil
	case program.LF:
		if i.lf == nil {
			return nil, ipperr.New(ipperr.FrameMissing, "no local frame on the frame stack")
		}
		return i.lf, nil
	case program.TF:
		if i.tf == nil {
			return nil, ipperr.New(ipperr.FrameMissing, "no temporary frame")
		}
		return i.tf, nil
	default:
		return nil, ipperr.Newf(ipperr.Internal, "unknown frame selector %d", fr)
	}
}

// opDefvar declares arg's variable in its frame. A second DEFVAR of the
// same name in the same frame is a Semantics error, only detectable at
// execution time since it depends on the actual control-flow path taken.
func (i *Interpreter) opDefvar(arg program.Argument) error {
	f, err := i.frameFor(arg.Frame)
	if err != nil {
		return err
	}
	if !f.Declare(arg.Name) {
		return ipperr.Newf(ipperr.Semantics, "variable %q already declared in this frame", arg.Name)
	}
	return nil
}

// getVar returns the raw value stored in arg's variable, including
// Uninit. Callers that must reject Uninit call evalSymb instead.
func (i *Interpreter) getVar(arg program.Argument) (value.Value, error) {
	f, err := i.frameFor(arg.Frame)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := f.Get(arg.Name)
	if !ok {
		return value.Value{}, ipperr.Newf(ipperr.VarMissing, "variable %q is not declared in this frame", arg.Name)
	}
	return v, nil
}

// setVar overwrites arg's variable.
func (i *Interpreter) setVar(arg program.Argument, v value.Value) error {
	f, err := i.frameFor(arg.Frame)
	if err != nil {
		return err
	}
	if !f.Set(arg.Name, v) {
		return ipperr.Newf(ipperr.VarMissing, "variable %q is not declared in this frame", arg.Name)
	}
	return nil
}

// evalSymb resolves a symb argument (literal or variable) to its value.
// Reading an Uninit variable here is a MissingValue error (spec.md
// invariant I2); TYPE is the sole opcode exempted from this and uses
// evalSymbTolerant instead.
func (i *Interpreter) evalSymb(arg program.Argument) (value.Value, error) {
	if arg.Kind == program.ArgLiteral {
		return arg.Lit, nil
	}
	v, err := i.getVar(arg)
	if err != nil {
		return value.Value{}, err
	}
	if v.IsUninit() {
		return value.Value{}, ipperr.New(ipperr.MissingValue, "read of an uninitialised variable")
	}
	return v, nil
}

// evalSymbTolerant is like evalSymb but returns Uninit values as-is
// instead of erroring; only TYPE may observe Uninit (spec.md §4.4).
func (i *Interpreter) evalSymbTolerant(arg program.Argument) (value.Value, error) {
	if arg.Kind == program.ArgLiteral {
		return arg.Lit, nil
	}
	return i.getVar(arg)
}
