package ioadapt

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	in := NewInput(strings.NewReader("one\ntwo\r\nthree"))

	line, ok := in.ReadLine()
	if !ok || line != "one" {
		t.Fatalf("ReadLine() = %q, %v; want \"one\", true", line, ok)
	}
	line, ok = in.ReadLine()
	if !ok || line != "two" {
		t.Fatalf("ReadLine() = %q, %v; want \"two\", true (CRLF should be stripped)", line, ok)
	}
	line, ok = in.ReadLine()
	if !ok || line != "three" {
		t.Fatalf("ReadLine() = %q, %v; want \"three\", true (final line without newline)", line, ok)
	}
	if _, ok := in.ReadLine(); ok {
		t.Fatal("ReadLine() at EOF should report ok=false")
	}
}

func TestReadLineEmptyInput(t *testing.T) {
	in := NewInput(strings.NewReader(""))
	if _, ok := in.ReadLine(); ok {
		t.Fatal("ReadLine() on empty input should report ok=false")
	}
}

func TestOutputWriteAndDPrint(t *testing.T) {
	var out, errOut bytes.Buffer
	o := &Output{Out: &out, Err: &errOut}

	if err := o.Write("hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.String() != "hello" {
		t.Fatalf("stdout = %q, want %q (no trailing newline)", out.String(), "hello")
	}

	if err := o.DPrint("world"); err != nil {
		t.Fatalf("DPrint: %v", err)
	}
	if errOut.String() != "world" {
		t.Fatalf("stderr = %q, want %q", errOut.String(), "world")
	}
}
