// Package xmlload parses and validates the IPPcode22 XML document into a
// program.Program: it is the engine's entire input schema (SPEC_FULL.md
// §4.1). It decodes with the standard library's encoding/xml — the
// schema here is fixed and strongly typed, so a generic dynamic-mapping
// XML library (as seen elsewhere in the retrieved example pack) buys
// nothing; see DESIGN.md.
package xmlload

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/value"
)

// xmlAnyElem matches any element not otherwise claimed by a struct field;
// its presence signals an unexpected child (e.g. a grandchild of <argK>).
type xmlAnyElem struct {
	XMLName xml.Name
}

type xmlArg struct {
	XMLName    xml.Name
	Type       string       `xml:"type,attr"`
	OtherAttrs []xml.Attr   `xml:",any,attr"`
	Text       string       `xml:",chardata"`
	Children   []xmlAnyElem `xml:",any"`
}

type xmlInstruction struct {
	XMLName    xml.Name
	Order      string       `xml:"order,attr"`
	Opcode     string       `xml:"opcode,attr"`
	OtherAttrs []xml.Attr   `xml:",any,attr"`
	Text       string       `xml:",chardata"`
	Args       []xmlArg     `xml:",any"`
}

type xmlProgram struct {
	XMLName      xml.Name
	Language     *string          `xml:"language,attr"`
	Name         *string          `xml:"name,attr"`
	Description  *string          `xml:"description,attr"`
	OtherAttrs   []xml.Attr       `xml:",any,attr"`
	Text         string           `xml:",chardata"`
	Instructions []xmlInstruction `xml:",any"`
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// Load decodes and validates an IPPcode22 XML document from r, sorts its
// instructions, and returns the resulting program. Every failure is an
// *ipperr.Error of kind XMLFormat or XMLStructure.
func Load(r io.Reader) (*program.Program, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var doc xmlProgram
	if err := dec.Decode(&doc); err != nil {
		return nil, ipperr.Wrap(err, ipperr.XMLFormat, "malformed XML document")
	}
	// Reject trailing content after the root element. Whitespace, comments
	// and processing instructions are allowed there.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ipperr.Wrap(err, ipperr.XMLFormat, "malformed XML document")
		}
		switch t := tok.(type) {
		case xml.CharData:
			if isBlank(string(t)) {
				continue
			}
		case xml.Comment, xml.ProcInst:
			continue
		}
		return nil, ipperr.Newf(ipperr.XMLFormat, "unexpected trailing content %v", tok)
	}

	if doc.XMLName.Local != "program" {
		return nil, ipperr.Newf(ipperr.XMLStructure, "root element must be <program>, got <%s>", doc.XMLName.Local)
	}
	if !isBlank(doc.Text) {
		return nil, ipperr.New(ipperr.XMLStructure, "<program> must not contain text content")
	}
	if len(doc.OtherAttrs) > 0 {
		return nil, ipperr.Newf(ipperr.XMLStructure, "unexpected attribute %q on <program>", doc.OtherAttrs[0].Name.Local)
	}
	if doc.Language == nil {
		return nil, ipperr.New(ipperr.XMLStructure, "<program> is missing required attribute \"language\"")
	}
	if strings.ToUpper(*doc.Language) != "IPPCODE22" {
		return nil, ipperr.Newf(ipperr.XMLStructure, "unsupported language %q", *doc.Language)
	}

	prog := &program.Program{
		Instructions: make([]program.Instruction, 0, len(doc.Instructions)),
	}
	if doc.Name != nil {
		prog.Name = *doc.Name
	}
	if doc.Description != nil {
		prog.Description = *doc.Description
	}

	type ordered struct {
		order int
		ins   program.Instruction
	}
	buf := make([]ordered, 0, len(doc.Instructions))
	seenOrder := make(map[int]bool, len(doc.Instructions))

	for _, xi := range doc.Instructions {
		if xi.XMLName.Local != "instruction" {
			return nil, ipperr.Newf(ipperr.XMLStructure, "unexpected child <%s> of <program>", xi.XMLName.Local)
		}
		if !isBlank(xi.Text) {
			return nil, ipperr.New(ipperr.XMLStructure, "<instruction> must not contain text content")
		}
		if len(xi.OtherAttrs) > 0 {
			return nil, ipperr.Newf(ipperr.XMLStructure, "unexpected attribute %q on <instruction>", xi.OtherAttrs[0].Name.Local)
		}
		order, err := strconv.Atoi(strings.TrimSpace(xi.Order))
		if err != nil || order <= 0 {
			return nil, ipperr.Newf(ipperr.XMLStructure, "instruction order %q is not a positive integer", xi.Order)
		}
		if seenOrder[order] {
			return nil, ipperr.Newf(ipperr.XMLStructure, "duplicate instruction order %d", order)
		}
		seenOrder[order] = true

		opcode := strings.ToUpper(strings.TrimSpace(xi.Opcode))
		sig, ok := program.Signature(opcode)
		if !ok {
			return nil, ipperr.Newf(ipperr.XMLStructure, "unknown opcode %q", opcode)
		}
		if len(xi.Args) != len(sig) {
			return nil, ipperr.Newf(ipperr.XMLStructure, "opcode %s expects %d argument(s), got %d", opcode, len(sig), len(xi.Args))
		}

		args, err := decodeArgs(opcode, xi.Args, sig)
		if err != nil {
			return nil, err
		}

		buf = append(buf, ordered{order: order, ins: program.Instruction{
			Opcode: opcode,
			Args:   args,
			Order:  order,
		}})
	}

	sort.Slice(buf, func(i, j int) bool { return buf[i].order < buf[j].order })
	for _, b := range buf {
		prog.Instructions = append(prog.Instructions, b.ins)
	}
	return prog, nil
}

var argTagOrder = map[string]int{"arg1": 0, "arg2": 1, "arg3": 2}

// decodeArgs validates and sorts argK elements by tag name (arg1 < arg2 <
// arg3, spec.md §4.1) and converts each to a program.Argument per its
// opcode-specific role.
func decodeArgs(opcode string, raw []xmlArg, sig []program.ArgRole) ([]program.Argument, error) {
	positioned := make([]*xmlArg, len(sig))
	for i := range raw {
		a := &raw[i]
		pos, ok := argTagOrder[a.XMLName.Local]
		if !ok || pos >= len(sig) {
			return nil, ipperr.Newf(ipperr.XMLStructure, "unexpected argument tag <%s> on opcode %s", a.XMLName.Local, opcode)
		}
		if positioned[pos] != nil {
			return nil, ipperr.Newf(ipperr.XMLStructure, "duplicate argument tag <%s> on opcode %s", a.XMLName.Local, opcode)
		}
		if len(a.Children) > 0 {
			return nil, ipperr.Newf(ipperr.XMLStructure, "<%s> must not contain child elements", a.XMLName.Local)
		}
		if len(a.OtherAttrs) > 0 {
			return nil, ipperr.Newf(ipperr.XMLStructure, "unexpected attribute %q on <%s>", a.OtherAttrs[0].Name.Local, a.XMLName.Local)
		}
		positioned[pos] = a
	}
	for i, a := range positioned {
		if a == nil {
			return nil, ipperr.Newf(ipperr.XMLStructure, "opcode %s is missing argument arg%d", opcode, i+1)
		}
	}

	args := make([]program.Argument, len(sig))
	for i, a := range positioned {
		arg, err := decodeArg(opcode, a, sig[i])
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

func decodeArg(opcode string, a *xmlArg, role program.ArgRole) (program.Argument, error) {
	typ := strings.TrimSpace(a.Type)
	text := a.Text

	switch role {
	case program.RoleLabel:
		if typ != "label" {
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "opcode %s expects a label argument, got type %q", opcode, typ)
		}
		return program.Argument{Kind: program.ArgLabel, Name: strings.TrimSpace(text)}, nil
	case program.RoleType:
		if typ != "type" {
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "opcode %s expects a type argument, got type %q", opcode, typ)
		}
		name := strings.TrimSpace(text)
		switch name {
		case "int", "string", "bool", "nil":
		default:
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "invalid type payload %q", name)
		}
		return program.Argument{Kind: program.ArgType, Name: name}, nil
	case program.RoleVar:
		if typ != "var" {
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "opcode %s expects a var argument, got type %q", opcode, typ)
		}
		return decodeVarArg(text)
	case program.RoleSymb:
		if typ == "var" {
			return decodeVarArg(text)
		}
		return decodeLiteralArg(typ, text)
	default:
		return program.Argument{}, ipperr.Newf(ipperr.Internal, "unknown argument role for opcode %s", opcode)
	}
}

func decodeVarArg(text string) (program.Argument, error) {
	name := strings.TrimSpace(text)
	parts := strings.SplitN(name, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "malformed variable reference %q", name)
	}
	var fr program.Frame
	switch parts[0] {
	case "GF":
		fr = program.GF
	case "LF":
		fr = program.LF
	case "TF":
		fr = program.TF
	default:
		return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "malformed variable reference %q", name)
	}
	return program.Argument{Kind: program.ArgVar, Frame: fr, Name: parts[1]}, nil
}

func decodeLiteralArg(typ, text string) (program.Argument, error) {
	switch typ {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "invalid int literal %q", text)
		}
		return program.Argument{Kind: program.ArgLiteral, Lit: value.Int(n)}, nil
	case "bool":
		switch strings.TrimSpace(text) {
		case "true":
			return program.Argument{Kind: program.ArgLiteral, Lit: value.Bool(true)}, nil
		case "false":
			return program.Argument{Kind: program.ArgLiteral, Lit: value.Bool(false)}, nil
		default:
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "invalid bool literal %q", text)
		}
	case "nil":
		if strings.TrimSpace(text) != "nil" {
			return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "invalid nil literal %q", text)
		}
		return program.Argument{Kind: program.ArgLiteral, Lit: value.Nil()}, nil
	case "string":
		s, err := DecodeEscapes(text)
		if err != nil {
			return program.Argument{}, ipperr.Wrapf(err, ipperr.XMLStructure, "invalid string literal %q", text)
		}
		return program.Argument{Kind: program.ArgLiteral, Lit: value.Str(s)}, nil
	default:
		return program.Argument{}, ipperr.Newf(ipperr.XMLStructure, "unknown argument type %q", typ)
	}
}

// DecodeEscapes expands every \ddd run of exactly three decimal digits in
// s into the character with that code point (spec.md §6). The loader
// applies it once, to each string literal; values are stored decoded.
func DecodeEscapes(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+3 >= len(s) {
			return "", errors.Errorf("truncated escape sequence in %q", s)
		}
		digits := s[i+1 : i+4]
		for _, d := range []byte(digits) {
			if d < '0' || d > '9' {
				return "", errors.Errorf("invalid escape sequence \\%s", digits)
			}
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return "", errors.Wrapf(err, "invalid escape sequence \\%s", digits)
		}
		b.WriteRune(rune(n))
		i += 3
	}
	return b.String(), nil
}
