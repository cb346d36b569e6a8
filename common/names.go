package common

import "strconv"

// NameCounter issues the unique names used for virtual registers, memory
// slots, parameter bindings and synthesized labels.  A single counter is
// shared by an entire compilation: names are never reused.
type NameCounter struct {
	count int
}

// NewNameCounter creates a new name counter.  The first name it issues is `1`.
func NewNameCounter() *NameCounter {
	return &NameCounter{}
}

// Next returns the next unique name.
func (nc *NameCounter) Next() string {
	nc.count++
	return strconv.Itoa(nc.count)
}

// Issued returns how many names have been issued so far.
func (nc *NameCounter) Issued() int {
	return nc.count
}
