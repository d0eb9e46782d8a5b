package cart

import "sort"

// Accumulator collects signed quantity changes per line item until they are
// dispatched. Не потокобезопасен.
type Accumulator struct {
	deltas map[string]int
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{deltas: make(map[string]int)}
}

// Record adds delta to the accumulated value of itemID
func (a *Accumulator) Record(itemID string, delta int) {
	a.deltas[itemID] += delta
}

// Get returns the accumulated delta of itemID, 0 if none
func (a *Accumulator) Get(itemID string) int {
	return a.deltas[itemID]
}

// DrainAll returns everything accumulated so far and resets the accumulator.
// Entries whose changes cancelled out keep a zero value.
func (a *Accumulator) DrainAll() map[string]int {
	out := a.deltas
	a.deltas = make(map[string]int)
	return out
}

// Discard drops the accumulated delta of itemID
func (a *Accumulator) Discard(itemID string) {
	delete(a.deltas, itemID)
}

// Len returns the number of items with recorded changes
func (a *Accumulator) Len() int {
	return len(a.deltas)
}

// Snapshot returns a copy of the accumulated deltas
func (a *Accumulator) Snapshot() map[string]int {
	out := make(map[string]int, len(a.deltas))
	for id, d := range a.deltas {
		out[id] = d
	}
	return out
}

// sortedIDs returns item ids of m in ascending order
func sortedIDs(m map[string]int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
