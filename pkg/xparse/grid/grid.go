package grid

// Grid is a read-only view over worksheet cells. Absent cells return Empty().
type Grid interface {
	Value(addr Address) Value
}

// Cell is an addressed cell value.
type Cell struct {
	Address Address
	Value   Value
}

// Column reads the cells of start's column from start.Row through end.Row.
func Column(g Grid, start, end Address) []Cell {
	if end.Row < start.Row {
		return nil
	}
	cells := make([]Cell, 0, end.Row-start.Row+1)
	for row := start.Row; row <= end.Row; row++ {
		addr := Address{Col: start.Col, Row: row}
		cells = append(cells, Cell{Address: addr, Value: g.Value(addr)})
	}
	return cells
}

// Memory is a map-backed Grid. The zero value is not usable; call NewMemory.
type Memory struct {
	cells  map[Address]Value
	maxRow int
}

// NewMemory returns an empty in-memory grid.
func NewMemory() *Memory {
	return &Memory{cells: make(map[Address]Value)}
}

// Set stores v at addr. Setting an empty value removes the cell.
func (m *Memory) Set(addr Address, v Value) {
	if v.IsEmpty() {
		delete(m.cells, addr)
		return
	}
	m.cells[addr] = v
	if addr.Row > m.maxRow {
		m.maxRow = addr.Row
	}
}

// Put parses ref and stores a decoded value (see FromAny).
func (m *Memory) Put(ref string, v any) error {
	addr, err := ParseAddress(ref)
	if err != nil {
		return err
	}
	m.Set(addr, FromAny(v))
	return nil
}

// Value implements Grid.
func (m *Memory) Value(addr Address) Value {
	return m.cells[addr]
}

// MaxRow returns the last row holding a value.
func (m *Memory) MaxRow() int {
	return m.maxRow
}
