package ecs

import "testing"

func TestBitArrayEmpty(t *testing.T) {
	b := NewBitArray(0)
	if got := b.Length(); got != 0 {
		t.Errorf("Length() = %d, want 0", got)
	}
	if got := b.Capacity(); got != 0 {
		t.Errorf("Capacity() = %d, want 0", got)
	}
	if b.Get(64) {
		t.Errorf("Get(64) = true, want false")
	}
}

func TestBitArraySetGrows(t *testing.T) {
	b := NewBitArray(0)
	b.Set(2)
	if got := b.Length(); got != 3 {
		t.Errorf("Length() = %d, want 3", got)
	}
	if got := b.Capacity(); got != 64 {
		t.Errorf("Capacity() = %d, want 64", got)
	}
	if !b.Get(2) {
		t.Errorf("Get(2) = false, want true")
	}
}

func TestBitArrayForEachSetBitDescending(t *testing.T) {
	b := NewBitArray(128)
	b.Set(3)
	b.Set(5)
	b.Set(117)

	var got []int
	b.ForEachSetBit(func(i int) { got = append(got, i) })

	want := []int{117, 5, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBitArrayIntersects(t *testing.T) {
	a := NewBitArray(0)
	for _, i := range []int{2, 4, 6} {
		a.Set(i)
	}
	b := NewBitArray(0)
	b.Set(4)
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("expected a and b to intersect symmetrically")
	}

	c := NewBitArray(0)
	c.Set(3)
	if a.Intersects(c) || c.Intersects(a) {
		t.Errorf("expected a and c to not intersect")
	}
}

func TestBitArrayContains(t *testing.T) {
	a := NewBitArray(0)
	a.Set(2)
	a.Set(4)
	b := NewBitArray(0)
	b.Set(2)
	b.Set(4)
	if !a.Contains(b) || !b.Contains(a) {
		t.Errorf("expected a and b to contain each other")
	}

	c := NewBitArray(0)
	c.Set(2)
	c.Set(3)
	if a.Contains(c) || c.Contains(a) {
		t.Errorf("expected a and c to not contain each other")
	}
}

func TestBitArrayContainsBeyondLength(t *testing.T) {
	a := NewBitArray(0)
	a.Set(1)
	b := NewBitArray(0)
	b.Set(200)
	if a.Contains(b) {
		t.Errorf("a should not contain a bit set beyond its own length")
	}
}

func TestBitArrayClearAndClearAll(t *testing.T) {
	b := NewBitArray(0)
	b.Set(10)
	b.Clear(10)
	if b.Get(10) {
		t.Errorf("expected bit 10 to be cleared")
	}
	b.Clear(999) // out-of-range clear is a no-op, not a panic

	b.Set(1)
	b.Set(2)
	capacity := b.Capacity()
	b.ClearAll()
	if !b.IsEmpty() {
		t.Errorf("expected ClearAll to leave the array empty")
	}
	if b.Capacity() != capacity {
		t.Errorf("ClearAll must preserve capacity")
	}
}

func TestBitArraySetNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Set(-1) to panic")
		}
	}()
	NewBitArray(0).Set(-1)
}

func TestBitArrayContainsAndIntersectsProperty(t *testing.T) {
	a := NewBitArray(0)
	a.Set(1)
	a.Set(2)
	a.Set(3)
	b := NewBitArray(0)
	b.Set(2)

	if a.Contains(b) && !a.Intersects(b) {
		t.Errorf("a.Contains(b) must imply a.Intersects(b) when b is nonempty")
	}
}
