package record

import (
	"reflect"
	"testing"
)

func TestIDSet(t *testing.T) {
	s := NewIDSet(5, 1, 3, 1)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	s.Add(9)
	if !s.Has(9) || s.Has(2) {
		t.Error("Has() mismatch")
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []int64{1, 3, 5, 9}) {
		t.Errorf("Sorted() = %v", got)
	}

	s.Intersect(NewIDSet(3, 9, 11))
	if got := s.Sorted(); !reflect.DeepEqual(got, []int64{3, 9}) {
		t.Errorf("after Intersect = %v", got)
	}
}

func TestIDSet_EmptySorted(t *testing.T) {
	got := NewIDSet().Sorted()
	if got == nil || len(got) != 0 {
		t.Errorf("Sorted() = %v, want empty non-nil", got)
	}
}
