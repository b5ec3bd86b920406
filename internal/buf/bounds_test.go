package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(7, 8); !ok || p != 56 {
		t.Fatalf("MulOverflowSafe(7,8)=%d,%v want 56,true", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 8); ok {
		t.Fatalf("negative operands must be rejected")
	}
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(64, 8, 4, 8)
	if err != nil || end != 40 {
		t.Fatalf("CheckListBounds = %d, %v; want 40, nil", end, err)
	}
	if _, err := CheckListBounds(64, 8, 8, 8); err == nil {
		t.Fatalf("expected bounds error for list past end")
	}
	if _, err := CheckListBounds(64, 8, -1, 8); err == nil {
		t.Fatalf("expected error for negative count")
	}
	if _, err := CheckListBounds(64, -4, 1, 8); err == nil {
		t.Fatalf("expected error for negative offset")
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
