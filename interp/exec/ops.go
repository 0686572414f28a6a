package exec

import (
	"unicode"
	"unicode/utf8"

	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/value"
)

func (i *Interpreter) binaryOperands(ins program.Instruction) (a, b value.Value, err error) {
	a, err = i.evalSymb(ins.Args[1])
	if err != nil {
		return
	}
	b, err = i.evalSymb(ins.Args[2])
	return
}

// opArith implements ADD/SUB/MUL/IDIV. Both operands must be Int; IDIV by
// zero is an OperandValue error. Go's int64 division already truncates
// toward zero, matching spec.md's "floor toward-zero" rule directly.
func (i *Interpreter) opArith(ins program.Instruction) error {
	a, b, err := i.binaryOperands(ins)
	if err != nil {
		return err
	}
	if a.Tag() != value.TagInt || b.Tag() != value.TagInt {
		return ipperr.Newf(ipperr.Operands, "%s: operands must be int", ins.Opcode)
	}
	var r int64
	switch ins.Opcode {
	case "ADD":
		r = a.Int() + b.Int()
	case "SUB":
		r = a.Int() - b.Int()
	case "MUL":
		r = a.Int() * b.Int()
	case "IDIV":
		if b.Int() == 0 {
			return ipperr.New(ipperr.OperandValue, "IDIV: division by zero")
		}
		r = a.Int() / b.Int()
	}
	return i.setVar(ins.Args[0], value.Int(r))
}

// opRelational implements LT/GT/EQ. LT/GT reject nil operands outright;
// EQ permits nil on either side (spec.md §4.4).
func (i *Interpreter) opRelational(ins program.Instruction) error {
	a, b, err := i.binaryOperands(ins)
	if err != nil {
		return err
	}
	var result bool
	switch ins.Opcode {
	case "EQ":
		ok := false
		result, ok = a.Eq(b)
		if !ok {
			return ipperr.New(ipperr.Operands, "EQ: operand type mismatch")
		}
	case "LT", "GT":
		if a.Tag() == value.TagNil || b.Tag() == value.TagNil {
			return ipperr.Newf(ipperr.Operands, "%s: nil is not a valid operand", ins.Opcode)
		}
		less, ok := a.Less(b)
		if !ok {
			return ipperr.Newf(ipperr.Operands, "%s: operand type mismatch", ins.Opcode)
		}
		if ins.Opcode == "LT" {
			result = less
		} else {
			eq, _ := a.Eq(b)
			result = !less && !eq
		}
	}
	return i.setVar(ins.Args[0], value.Bool(result))
}

// opBoolean implements AND/OR/NOT, all requiring Bool operands.
func (i *Interpreter) opBoolean(ins program.Instruction) error {
	a, err := i.evalSymb(ins.Args[1])
	if err != nil {
		return err
	}
	if a.Tag() != value.TagBool {
		return ipperr.Newf(ipperr.Operands, "%s: operand must be bool", ins.Opcode)
	}
	if ins.Opcode == "NOT" {
		return i.setVar(ins.Args[0], value.Bool(!a.Bool()))
	}
	b, err := i.evalSymb(ins.Args[2])
	if err != nil {
		return err
	}
	if b.Tag() != value.TagBool {
		return ipperr.Newf(ipperr.Operands, "%s: operand must be bool", ins.Opcode)
	}
	var r bool
	if ins.Opcode == "AND" {
		r = a.Bool() && b.Bool()
	} else {
		r = a.Bool() || b.Bool()
	}
	return i.setVar(ins.Args[0], value.Bool(r))
}

func (i *Interpreter) opConcat(ins program.Instruction) error {
	a, b, err := i.binaryOperands(ins)
	if err != nil {
		return err
	}
	if a.Tag() != value.TagString || b.Tag() != value.TagString {
		return ipperr.New(ipperr.Operands, "CONCAT: operands must be string")
	}
	return i.setVar(ins.Args[0], value.Str(a.Str()+b.Str()))
}

func (i *Interpreter) opStrlen(ins program.Instruction) error {
	a, err := i.evalSymb(ins.Args[1])
	if err != nil {
		return err
	}
	if a.Tag() != value.TagString {
		return ipperr.New(ipperr.Operands, "STRLEN: operand must be string")
	}
	return i.setVar(ins.Args[0], value.Int(int64(utf8.RuneCountInString(a.Str()))))
}

func (i *Interpreter) opGetchar(ins program.Instruction) error {
	s, idx, err := i.stringAndIndex(ins)
	if err != nil {
		return err
	}
	runes := []rune(s.Str())
	n := int64(idx.Int())
	if n < 0 || n >= int64(len(runes)) {
		return ipperr.New(ipperr.StringError, "GETCHAR: index out of bounds")
	}
	return i.setVar(ins.Args[0], value.Str(string(runes[n])))
}

func (i *Interpreter) opSetchar(ins program.Instruction) error {
	dest, err := i.getVar(ins.Args[0])
	if err != nil {
		return err
	}
	if dest.IsUninit() {
		return ipperr.New(ipperr.MissingValue, "SETCHAR: destination is uninitialised")
	}
	if dest.Tag() != value.TagString {
		return ipperr.New(ipperr.Operands, "SETCHAR: destination must be string")
	}
	idx, err := i.evalSymb(ins.Args[1])
	if err != nil {
		return err
	}
	repl, err := i.evalSymb(ins.Args[2])
	if err != nil {
		return err
	}
	if idx.Tag() != value.TagInt || repl.Tag() != value.TagString {
		return ipperr.New(ipperr.Operands, "SETCHAR: operand type mismatch")
	}
	replRunes := []rune(repl.Str())
	if len(replRunes) == 0 {
		return ipperr.New(ipperr.StringError, "SETCHAR: replacement string is empty")
	}
	runes := []rune(dest.Str())
	n := idx.Int()
	if n < 0 || n >= int64(len(runes)) {
		return ipperr.New(ipperr.StringError, "SETCHAR: index out of bounds")
	}
	runes[n] = replRunes[0]
	return i.setVar(ins.Args[0], value.Str(string(runes)))
}

func (i *Interpreter) opStri2int(ins program.Instruction) error {
	s, idx, err := i.stringAndIndex(ins)
	if err != nil {
		return err
	}
	runes := []rune(s.Str())
	n := idx.Int()
	if n < 0 || n >= int64(len(runes)) {
		return ipperr.New(ipperr.StringError, "STRI2INT: index out of bounds")
	}
	return i.setVar(ins.Args[0], value.Int(int64(runes[n])))
}

// stringAndIndex evaluates the (string, int) operand pair shared by
// GETCHAR and STRI2INT.
func (i *Interpreter) stringAndIndex(ins program.Instruction) (s, idx value.Value, err error) {
	s, err = i.evalSymb(ins.Args[1])
	if err != nil {
		return
	}
	idx, err = i.evalSymb(ins.Args[2])
	if err != nil {
		return
	}
	if s.Tag() != value.TagString || idx.Tag() != value.TagInt {
		err = ipperr.New(ipperr.Operands, "operand type mismatch")
	}
	return
}

// isSurrogate reports whether r falls in the UTF-16 surrogate range,
// which is not a valid Unicode scalar value.
func isSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDFFF }

// opInt2char accepts the full Unicode scalar range [0,0x10FFFF] minus
// surrogates (spec.md §9 policy resolution), not the narrower Latin-1
// range some IPPcode22 implementations historically used.
func (i *Interpreter) opInt2char(ins program.Instruction) error {
	a, err := i.evalSymb(ins.Args[1])
	if err != nil {
		return err
	}
	if a.Tag() != value.TagInt {
		return ipperr.New(ipperr.Operands, "INT2CHAR: operand must be int")
	}
	n := a.Int()
	if n < 0 || n > unicode.MaxRune || isSurrogate(rune(n)) {
		return ipperr.Newf(ipperr.StringError, "INT2CHAR: %d is not a valid Unicode scalar value", n)
	}
	return i.setVar(ins.Args[0], value.Str(string(rune(n))))
}

// opType is the sole opcode that may observe an Uninit source operand,
// rendering it as the empty string (spec.md §4.4).
func (i *Interpreter) opType(ins program.Instruction) error {
	a, err := i.evalSymbTolerant(ins.Args[1])
	if err != nil {
		return err
	}
	return i.setVar(ins.Args[0], value.Str(a.Tag().String()))
}
