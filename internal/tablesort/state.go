package tablesort

import "sync"

// State tracks which column a table is sorted by. Clicking the active column
// flips its direction; clicking another column starts it ascending and resets
// the rest.
type State struct {
	mu     sync.Mutex
	column int
	dir    Direction
}

// NewState returns an unsorted state.
func NewState() *State {
	return &State{column: -1}
}

// Click toggles column for t. A table without sortable rows, or a column
// outside it, leaves the state unchanged; changed reports otherwise.
func (s *State) Click(t Table, column int) (changed bool) {
	if t.SortableRows() == 0 || column < 0 || column >= len(t.Columns) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.column == column && s.dir == Ascending {
		s.dir = Descending
	} else {
		s.column = column
		s.dir = Ascending
	}
	return true
}

// Direction returns the direction of column; None unless it is active.
func (s *State) Direction(column int) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.column != column {
		return None
	}
	return s.dir
}

// Active returns the sorted column and its direction, or -1 and None.
func (s *State) Active() (int, Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.column, s.dir
}

// Reset returns the state to unsorted.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.column, s.dir = -1, None
}

// Apply returns t ordered by the active column, or t itself when unsorted or
// the active column no longer exists.
func (s *State) Apply(t Table) Table {
	column, dir := s.Active()
	if dir == None {
		return t
	}
	sorted, err := t.Sorted(column, dir)
	if err != nil {
		return t
	}
	return sorted
}
