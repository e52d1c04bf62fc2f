package bitvec

import (
	"reflect"
	"testing"
)

func fromString(s string) *Vector {
	v := New(len(s))
	for i, c := range s {
		v.Set(i, c == '1')
	}
	return v
}

func TestGetSet(t *testing.T) {
	v := New(130)
	for _, i := range []int{0, 1, 63, 64, 65, 129} {
		v.Set(i, true)
		if !v.Get(i) {
			t.Errorf("Get(%d) = false after Set(%d, true)", i, i)
		}
	}
	v.Set(64, false)
	if v.Get(64) {
		t.Error("Get(64) = true after clearing")
	}
	if got := v.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestGetOutOfRange(t *testing.T) {
	v := New(10)
	v.Set(9, true)
	for _, i := range []int{-1, 10, 11, 1000} {
		if v.Get(i) {
			t.Errorf("Get(%d) = true, want false", i)
		}
	}
	// Writes outside the range are dropped rather than growing the vector.
	v.Set(20, true)
	if v.Size() != 10 {
		t.Errorf("Size() = %d after out-of-range Set, want 10", v.Size())
	}

	var nilVec *Vector
	if nilVec.Get(0) || nilVec.Size() != 0 {
		t.Error("nil vector should read as empty")
	}
}

func TestIndices(t *testing.T) {
	v := New(200)
	want := []int{1, 5, 10, 64, 199}
	for _, i := range want {
		v.Set(i, true)
	}
	if got := v.Indices(); !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name   string
		self   string
		other  string
		offset int
		want   string
	}{
		{
			name:   "left expansion",
			self:   "001100",
			other:  "111111",
			offset: -6,
			want:   "111111001100",
		},
		{
			name:   "zero offset same size",
			self:   "1000",
			other:  "0101",
			offset: 0,
			want:   "1101",
		},
		{
			name:   "zero offset grows right",
			self:   "10",
			other:  "00001",
			offset: 0,
			want:   "10001",
		},
		{
			name:   "positive offset grows right",
			self:   "100",
			other:  "11",
			offset: 3,
			want:   "10011",
		},
		{
			name:   "overlap keeps existing bits",
			self:   "111",
			other:  "000",
			offset: 0,
			want:   "111",
		},
		{
			name:   "negative offset overlapping",
			self:   "0110",
			other:  "101",
			offset: -2,
			want:   "101110",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromString(tt.self).Union(fromString(tt.other), tt.offset)
			if got.String() != tt.want {
				t.Errorf("Union() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnionNegativeOffsetSize(t *testing.T) {
	self := New(8)
	other := New(5)
	self.Set(2, true)
	self.Set(7, true)

	for _, offset := range []int{-1, -3, -5, -9} {
		got := self.Union(other, offset)
		pos := other.Size() + offset
		want := self.Size()
		if pos > want {
			want = pos
		}
		want += -offset
		if got.Size() != want {
			t.Errorf("offset %d: Size() = %d, want %d", offset, got.Size(), want)
		}
		for i := 0; i < self.Size(); i++ {
			if got.Get(i-offset) != self.Get(i) {
				t.Errorf("offset %d: bit %d not preserved at %d", offset, i, i-offset)
			}
		}
	}
}

func TestUnionNeverClears(t *testing.T) {
	self := New(70)
	for i := 0; i < 70; i += 3 {
		self.Set(i, true)
	}
	other := New(100)
	for i := 1; i < 100; i += 7 {
		other.Set(i, true)
	}

	got := self.Union(other, 0)
	for _, i := range self.Indices() {
		if !got.Get(i) {
			t.Errorf("bit %d cleared by union", i)
		}
	}
	for _, j := range other.Indices() {
		if !got.Get(j) {
			t.Errorf("bit %d of other missing from union", j)
		}
	}
	if self.Size() != 70 {
		t.Error("Union must not modify the receiver")
	}
}
