package depm

import (
	"testing"

	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/types"
)

func TestDeclareDuplicateInSameFrame(t *testing.T) {
	vt := NewVariableTable(common.NewNameCounter())
	vt.CreateScope()

	first, ok := vt.Declare("x", false, types.PrimKindI32, nil)
	if !ok {
		t.Fatal("first declaration failed")
	}

	existing, ok := vt.Declare("x", true, types.PrimKindI64, nil)
	if ok {
		t.Fatal("duplicate declaration in the same frame succeeded")
	}

	if existing != first {
		t.Error("duplicate declaration did not return the existing binding")
	}
}

func TestShadowingInNestedFrame(t *testing.T) {
	vt := NewVariableTable(common.NewNameCounter())
	vt.CreateScope()
	outer, _ := vt.Declare("x", false, types.PrimKindI32, nil)

	vt.CreateScope()
	inner, ok := vt.Declare("x", true, types.PrimKindF64, nil)
	if !ok {
		t.Fatal("shadowing declaration in a nested frame failed")
	}

	if v, _ := vt.Lookup("x"); v != inner {
		t.Error("lookup in nested frame did not find the inner binding")
	}

	removed := vt.PopScope()
	if len(removed) != 1 || removed[0] != inner {
		t.Errorf("PopScope() = %v, want the inner binding", removed)
	}

	if v, _ := vt.Lookup("x"); v != outer {
		t.Error("lookup after pop did not find the outer binding")
	}

	vt.PopScope()
	if _, ok := vt.Lookup("x"); ok {
		t.Error("binding visible after its frame was popped")
	}
}

func TestKeysAreUnique(t *testing.T) {
	vt := NewVariableTable(common.NewNameCounter())
	seen := make(map[string]bool)

	for frame := 0; frame < 3; frame++ {
		vt.CreateScope()
		for _, name := range []string{"a", "b", "c"} {
			v, _ := vt.Declare(name, false, types.PrimKindBool, nil)
			if seen[v.Key] {
				t.Fatalf("key %q issued twice", v.Key)
			}
			seen[v.Key] = true
		}
	}
}

func TestRebindKey(t *testing.T) {
	names := common.NewNameCounter()
	vt := NewVariableTable(names)
	vt.CreateScope()

	paramKey := names.Next()
	vt.Declare("a", false, types.PrimKindI32, nil)

	if !vt.RebindKey("a", paramKey) {
		t.Fatal("RebindKey on a bound name failed")
	}

	if v, _ := vt.Lookup("a"); v.Key != paramKey {
		t.Errorf("key = %q, want %q", v.Key, paramKey)
	}

	if vt.RebindKey("b", paramKey) {
		t.Error("RebindKey on an unbound name succeeded")
	}

	if vt.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", vt.Depth())
	}
}

func TestPopScopeOrder(t *testing.T) {
	vt := NewVariableTable(common.NewNameCounter())
	vt.CreateScope()

	for _, name := range []string{"z", "y", "x"} {
		vt.Declare(name, false, types.PrimKindI32, nil)
	}

	removed := vt.PopScope()
	for i, want := range []string{"z", "y", "x"} {
		if removed[i].Name != want {
			t.Errorf("removed[%d] = %q, want %q", i, removed[i].Name, want)
		}
	}
}
