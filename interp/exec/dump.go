package exec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AdamBalu/IPP/interp/value"
)

// dumpState writes a human-readable execution snapshot to stderr for
// BREAK, in the spirit of the teacher's own dumpVM debug helper: current
// position, instruction count, every frame's variables, and all three
// stacks (FS, CS, DS) per spec.md §4.4/§3. This is a diagnostic aid, not
// a machine-readable format (SPEC_FULL.md §7 deliberately drops that
// ambition).
func (i *Interpreter) dumpState() {
	var b strings.Builder
	fmt.Fprintf(&b, "-- BREAK at instruction %d (%d executed) --\n", i.ip, i.executedCount)
	dumpFrame(&b, "GF", i.gf)
	dumpFrame(&b, "LF", i.lf)
	dumpFrame(&b, "TF", i.tf)
	fmt.Fprintf(&b, "frame stack (top first): %d frame(s)\n", len(i.fs))
	for k := len(i.fs) - 1; k >= 0; k-- {
		dumpFrame(&b, fmt.Sprintf("  FS[%d]", k), i.fs[k])
	}
	fmt.Fprintf(&b, "call stack (top first): %d return address(es)\n", len(i.cs))
	for k := len(i.cs) - 1; k >= 0; k-- {
		fmt.Fprintf(&b, "  %d\n", i.cs[k])
	}
	fmt.Fprintf(&b, "data stack (top first): %d value(s)\n", len(i.ds))
	for k := len(i.ds) - 1; k >= 0; k-- {
		fmt.Fprintf(&b, "  %s\n", renderDump(i.ds[k]))
	}
	i.out.Diagnostic(b.String())
}

func dumpFrame(b *strings.Builder, name string, f *value.Frame) {
	if f == nil {
		fmt.Fprintf(b, "%s: <does not exist>\n", name)
		return
	}
	names := f.Names()
	sort.Strings(names)
	fmt.Fprintf(b, "%s: %d variable(s)\n", name, len(names))
	for _, n := range names {
		v, _ := f.Get(n)
		fmt.Fprintf(b, "  %s = %s\n", n, renderDump(v))
	}
}

func renderDump(v value.Value) string {
	if v.IsUninit() {
		return "<uninit>"
	}
	return fmt.Sprintf("%s(%s)", v.Tag(), v.Render())
}
