package bitutil

import "testing"

func TestBitArrayGetSet(t *testing.T) {
	ba := NewBitArray(33)
	for i := 0; i < 33; i++ {
		if ba.Get(i) {
			t.Errorf("bit %d should not be set", i)
		}
	}
	ba.Set(0)
	ba.Set(31)
	ba.Set(32)
	if !ba.Get(0) || !ba.Get(31) || !ba.Get(32) {
		t.Error("bits should be set")
	}
	if ba.Get(1) || ba.Get(30) {
		t.Error("bits should not be set")
	}
	if ba.Count() != 3 {
		t.Errorf("Count = %d, want 3", ba.Count())
	}
}

func TestBitArrayEmpty(t *testing.T) {
	ba := NewBitArray(0)
	if ba.Size() != 0 || ba.GetNextSet(0) != 0 || ba.String() != "" {
		t.Error("empty array should have no bits")
	}
}

func TestBitArrayGetNext(t *testing.T) {
	ba := NewBitArray(70)
	ba.Set(10)
	ba.Set(40)
	tests := []struct {
		from, set int
	}{
		{0, 10}, {10, 10}, {11, 40}, {41, 70}, {70, 70},
	}
	for _, tt := range tests {
		if got := ba.GetNextSet(tt.from); got != tt.set {
			t.Errorf("GetNextSet(%d) = %d, want %d", tt.from, got, tt.set)
		}
	}

	ba.SetRange(0, 70)
	ba.Flip(3)
	ba.Flip(65)
	if got := ba.GetNextUnset(0); got != 3 {
		t.Errorf("GetNextUnset(0) = %d, want 3", got)
	}
	if got := ba.GetNextUnset(4); got != 65 {
		t.Errorf("GetNextUnset(4) = %d, want 65", got)
	}
	// Bits past Size in the last word must not be reported.
	if got := ba.GetNextUnset(66); got != 70 {
		t.Errorf("GetNextUnset(66) = %d, want 70", got)
	}
}

func TestBitArraySetRangeAcrossWords(t *testing.T) {
	ba := NewBitArray(96)
	ba.SetRange(30, 70)
	for i := 0; i < 96; i++ {
		if want := i >= 30 && i < 70; ba.Get(i) != want {
			t.Errorf("bit %d = %v, want %v", i, ba.Get(i), want)
		}
	}
	ba.SetRange(5, 5)
	if ba.Get(5) {
		t.Error("empty range should set nothing")
	}
}

func TestBitArrayIsRange(t *testing.T) {
	ba := NewBitArray(80)
	ba.SetRange(4, 68)
	tests := []struct {
		start, end int
		value      bool
		want       bool
	}{
		{4, 68, true, true},
		{0, 4, false, true},
		{68, 80, false, true},
		{0, 8, true, false},
		{30, 40, false, false},
		{10, 10, true, true},
	}
	for _, tt := range tests {
		if got := ba.IsRange(tt.start, tt.end, tt.value); got != tt.want {
			t.Errorf("IsRange(%d, %d, %v) = %v, want %v", tt.start, tt.end, tt.value, got, tt.want)
		}
	}
}

func TestBitArrayInvalidRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetRange past Size should panic")
		}
	}()
	NewBitArray(8).SetRange(0, 9)
}

func TestBitArrayReverse(t *testing.T) {
	ba := NewBitArray(40)
	ba.Set(0)
	ba.Set(2)
	ba.Set(39)
	ba.Reverse()
	for i := 0; i < 40; i++ {
		if want := i == 37 || i == 39 || i == 0; ba.Get(i) != want {
			t.Errorf("bit %d = %v, want %v", i, ba.Get(i), want)
		}
	}
}

func TestBitArrayClone(t *testing.T) {
	ba := NewBitArray(16)
	ba.Set(5)
	clone := ba.Clone()
	clone.Set(10)
	if ba.Get(10) {
		t.Error("modifying clone should not affect original")
	}
	if !clone.Get(5) || !clone.Get(10) {
		t.Error("clone should have both bits set")
	}
}

func TestBitArrayString(t *testing.T) {
	ba := NewBitArray(10)
	ba.Set(1)
	ba.Set(8)
	if got, want := ba.String(), " .X...... X."; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
