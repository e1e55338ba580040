// Package alphabet provides the immutable symbol table shared by every
// stage of the diagnosability pipeline.
//
// The source material this repo is modelled on threads symbol→id maps
// through each pipeline stage as shared, mutable dictionaries. Here the
// table is built once by the reader and handed to every downstream
// stage by reference; nothing downstream copies or mutates it.
package alphabet

import "fmt"

// ID is a stable, dense integer identifier for an event symbol.
// Ids are dense in 1..Len().
type ID int

// Table is an immutable bidirectional mapping between event symbols
// and their ids.
type Table struct {
	symbols []string     // index 0 unused; symbols[i] is the symbol for ID(i)
	ids     map[string]ID
}

// New builds a Table assigning ids 1..len(symbols) in the given order.
// Duplicate symbols are an error.
func New(symbols []string) (*Table, error) {
	t := &Table{
		symbols: make([]string, len(symbols)+1),
		ids:     make(map[string]ID, len(symbols)),
	}
	for i, sym := range symbols {
		if _, dup := t.ids[sym]; dup {
			return nil, fmt.Errorf("alphabet: duplicate event symbol %q", sym)
		}
		id := ID(i + 1)
		t.symbols[id] = sym
		t.ids[sym] = id
	}
	return t, nil
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.symbols) - 1
}

// ID returns the id of sym, or ok=false if sym is unknown.
func (t *Table) ID(sym string) (ID, bool) {
	id, ok := t.ids[sym]
	return id, ok
}

// Symbol returns the symbol for id, or ok=false if id is out of range.
func (t *Table) Symbol(id ID) (string, bool) {
	if int(id) < 1 || int(id) >= len(t.symbols) {
		return "", false
	}
	return t.symbols[id], true
}

// IDs returns every id in the table, in ascending order.
func (t *Table) IDs() []ID {
	ids := make([]ID, 0, t.Len())
	for id := ID(1); int(id) < len(t.symbols); id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether id is dense in 1..Len().
func (t *Table) Valid(id ID) bool {
	return int(id) >= 1 && int(id) < len(t.symbols)
}
