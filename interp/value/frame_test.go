package value

import "testing"

func TestFrameDeclareGetSet(t *testing.T) {
	f := NewFrame()

	if f.Has("x") {
		t.Fatal("fresh frame should not have x")
	}
	if !f.Declare("x") {
		t.Fatal("first Declare(x) should succeed")
	}
	if f.Declare("x") {
		t.Fatal("second Declare(x) should fail")
	}

	v, ok := f.Get("x")
	if !ok || !v.IsUninit() {
		t.Fatalf("Get(x) = %v, %v; want Uninit, true", v, ok)
	}

	if !f.Set("x", Int(42)) {
		t.Fatal("Set(x) should succeed once declared")
	}
	v, ok = f.Get("x")
	if !ok || v.Tag() != TagInt || v.Int() != 42 {
		t.Fatalf("Get(x) after Set = %v, %v", v, ok)
	}

	if f.Set("y", Int(1)) {
		t.Fatal("Set on an undeclared variable should fail")
	}
	if _, ok := f.Get("y"); ok {
		t.Fatal("Get on an undeclared variable should fail")
	}
}

func TestFrameNames(t *testing.T) {
	f := NewFrame()
	f.Declare("a")
	f.Declare("b")
	names := f.Names()
	if len(names) != 2 {
		t.Fatalf("Names() = %v, want 2 entries", names)
	}
}
