// Package collision implements the duplicate-name tracker used while
// reading a FIELD section (§4.10, §3.1). Two arrays in the same field
// container are permitted to share an on-disk name in the wire
// format — it is unusual but not malformed — but a by-name lookup on
// the resulting container would then be ambiguous, so every repeat
// use of a name within one section is flagged for the diagnostic log.
// A Tracker is created fresh per FIELD section and discarded once the
// section ends.
package collision

// Tracker counts occurrences of on-disk array names seen so far
// within one FIELD section.
type Tracker struct {
	seen map[string]int
	dups []string
}

// NewTracker creates an empty name tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]int)}
}

// Track records one occurrence of name and reports whether this
// occurrence is a repeat of a name already seen in this section.
func (t *Tracker) Track(name string) (isDuplicate bool) {
	t.seen[name]++
	if t.seen[name] > 1 {
		t.dups = append(t.dups, name)
		return true
	}

	return false
}

// Count returns how many times name has been seen so far.
func (t *Tracker) Count(name string) int {
	return t.seen[name]
}

// Duplicates returns the names (in encounter order, one entry per
// repeat occurrence) that were flagged as duplicates.
func (t *Tracker) Duplicates() []string {
	return t.dups
}

// Reset clears all tracked names, preserving the underlying map's
// capacity so the tracker can be reused for the next FIELD section.
func (t *Tracker) Reset() {
	for k := range t.seen {
		delete(t.seen, k)
	}

	t.dups = t.dups[:0]
}
