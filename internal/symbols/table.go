package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// MethodID identifies a method inside a Table.
type MethodID uint32

// NoMethodID marks the absence of a method.
const NoMethodID MethodID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id MethodID) IsValid() bool { return id != NoMethodID }

// Table stores the methods referenced by one compilation unit.
type Table struct {
	methods []*Method
	ids     map[*Method]MethodID
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{
		methods: []*Method{nil}, // reserve 0 as invalid sentinel
		ids:     make(map[*Method]MethodID, 16),
	}
}

// Add registers m and returns its ID. Registering the same method twice
// returns the first ID.
func (t *Table) Add(m *Method) MethodID {
	if m == nil {
		return NoMethodID
	}
	if id, ok := t.ids[m]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(t.methods))
	if err != nil {
		panic(fmt.Errorf("method table overflow: %w", err))
	}
	id := MethodID(n)
	t.methods = append(t.methods, m)
	t.ids[m] = id
	return id
}

// Get returns the method for id, or nil.
func (t *Table) Get(id MethodID) *Method {
	if t == nil || !id.IsValid() || int(id) >= len(t.methods) {
		return nil
	}
	return t.methods[id]
}

// ID returns the ID assigned to m.
func (t *Table) ID(m *Method) (MethodID, bool) {
	if t == nil {
		return NoMethodID, false
	}
	id, ok := t.ids[m]
	return id, ok
}

// Len counts registered methods.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.methods) - 1
}

// All returns registered methods in ID order.
func (t *Table) All() []*Method {
	if t == nil {
		return nil
	}
	out := make([]*Method, len(t.methods)-1)
	copy(out, t.methods[1:])
	return out
}
