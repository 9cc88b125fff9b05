package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordSet_NilSafe(t *testing.T) {
	var rs *RecordSet
	if rs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rs.Len())
	}
	if !rs.Empty() {
		t.Error("nil set should be empty")
	}
	if rs.Head(5) != nil {
		t.Error("Head on nil set should be nil")
	}
}

func TestRecordSet_Head(t *testing.T) {
	rs := &RecordSet{Records: []Record{
		{Date: day(1), Platform: "Uber", Earnings: decimal.NewFromInt(10)},
		{Date: day(2), Platform: "Lyft", Earnings: decimal.NewFromInt(20)},
	}}

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{5, 2},
	}
	for _, tt := range tests {
		if got := len(rs.Head(tt.n)); got != tt.want {
			t.Errorf("Head(%d) returned %d rows, want %d", tt.n, got, tt.want)
		}
	}
}

func TestRecordSet_DateRange(t *testing.T) {
	rs := &RecordSet{Records: []Record{
		{Date: day(5)},
		{Date: day(2)},
		{Date: day(9)},
	}}
	first, last := rs.DateRange()
	if !first.Equal(day(2)) {
		t.Errorf("first = %v, want %v", first, day(2))
	}
	if !last.Equal(day(9)) {
		t.Errorf("last = %v, want %v", last, day(9))
	}

	empty := &RecordSet{}
	first, last = empty.DateRange()
	if !first.IsZero() || !last.IsZero() {
		t.Error("empty set should return zero dates")
	}
}
