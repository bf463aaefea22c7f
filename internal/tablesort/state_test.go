package tablesort

import (
	"reflect"
	"testing"
)

func TestStateCycle(t *testing.T) {
	table := sampleTable()
	s := NewState()

	if col, dir := s.Active(); col != -1 || dir != None {
		t.Fatalf("NewState() = %d %v, want unsorted", col, dir)
	}

	want := []Direction{Ascending, Descending, Ascending, Descending}
	for i, dir := range want {
		if !s.Click(table, 1) {
			t.Fatalf("click %d reported no change", i)
		}
		if got := s.Direction(1); got != dir {
			t.Errorf("click %d direction = %v, want %v", i, got, dir)
		}
	}
}

func TestStateNewColumnResets(t *testing.T) {
	table := sampleTable()
	s := NewState()
	s.Click(table, 1)
	s.Click(table, 1)

	s.Click(table, 0)
	if s.Direction(0) != Ascending {
		t.Errorf("new column direction = %v, want asc", s.Direction(0))
	}
	if s.Direction(1) != None {
		t.Errorf("previous column direction = %v, want none", s.Direction(1))
	}
}

func TestStateIgnoresEmptyTable(t *testing.T) {
	s := NewState()
	empty := Table{
		Columns: []Column{{Header: "Entidad"}},
		Rows:    []Row{{Cells: []Cell{{Text: "TOTALES"}}, Totals: true}},
	}
	if s.Click(empty, 0) {
		t.Errorf("Click() on a table without sortable rows reported a change")
	}
	if col, dir := s.Active(); col != -1 || dir != None {
		t.Errorf("state changed to %d %v", col, dir)
	}
	if s.Click(sampleTable(), 9) {
		t.Errorf("Click() on a missing column reported a change")
	}
}

func TestStateApply(t *testing.T) {
	table := sampleTable()
	s := NewState()

	if got := rowIDs(s.Apply(table).Rows); !reflect.DeepEqual(got, []int64{1, 2, 3, 4, 0}) {
		t.Errorf("unsorted Apply() = %v", got)
	}

	s.Click(table, 1)
	s.Click(table, 1)
	if got := rowIDs(s.Apply(table).Rows); !reflect.DeepEqual(got, []int64{1, 3, 2, 4, 0}) {
		t.Errorf("descending Apply() = %v", got)
	}

	s.Reset()
	if _, dir := s.Active(); dir != None {
		t.Errorf("Reset() left direction %v", dir)
	}
}

func TestDirectionText(t *testing.T) {
	for dir, want := range map[Direction]string{None: "", Ascending: "asc", Descending: "desc"} {
		b, _ := dir.MarshalText()
		if string(b) != want {
			t.Errorf("%d.MarshalText() = %q, want %q", dir, b, want)
		}
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, dir := range []Direction{None, Ascending, Descending} {
		b, _ := dir.MarshalText()
		var got Direction
		if err := got.UnmarshalText(b); err != nil || got != dir {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, got, err)
		}
	}
	var d Direction
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Errorf("expected error for an unknown direction")
	}
}
