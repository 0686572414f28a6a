package exec

import (
	"strconv"
	"strings"

	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/value"
)

// opRead draws one line from the interpreter's input stream and parses it
// as the requested type. A missing line or a value that doesn't parse as
// the requested type both yield Nil, matching IPPcode22's traditional
// READ behaviour rather than raising an error.
func (i *Interpreter) opRead(ins program.Instruction) error {
	typeName := ins.Args[1].Name
	line, ok := i.in.ReadLine()
	if !ok {
		return i.setVar(ins.Args[0], value.Nil())
	}
	var v value.Value
	switch typeName {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			v = value.Nil()
		} else {
			v = value.Int(n)
		}
	case "bool":
		v = value.Bool(strings.EqualFold(strings.TrimSpace(line), "true"))
	case "string":
		v = value.Str(line)
	default:
		v = value.Nil()
	}
	return i.setVar(ins.Args[0], v)
}

func (i *Interpreter) opWrite(ins program.Instruction) error {
	v, err := i.evalSymb(ins.Args[0])
	if err != nil {
		return err
	}
	if werr := i.out.Write(v.Render()); werr != nil {
		return ipperr.Wrap(werr, ipperr.Internal, "WRITE")
	}
	return nil
}

func (i *Interpreter) opDprint(ins program.Instruction) error {
	v, err := i.evalSymb(ins.Args[0])
	if err != nil {
		return err
	}
	if werr := i.out.DPrint(v.Render()); werr != nil {
		return ipperr.Wrap(werr, ipperr.Internal, "DPRINT")
	}
	return nil
}
