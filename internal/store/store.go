// Package store owns the canonical in-memory record collection and the
// stable per-record identity. It is the single mutable state of the
// application session: one owner, no concurrent use.
package store

import (
	"log/slog"

	"ledgerdesk/internal/core"
)

// Store holds the live record collection. Mutations are only permitted
// through its methods; callers that need the data take a Snapshot.
type Store struct {
	records  []core.Record
	nextID   int64
	revision uint64
}

// Snapshot is an isolated copy of the store's content at one point in
// time. Mutating the store afterwards does not change it. Revision
// increases with every mutation and is usable as a cache key component.
type Snapshot struct {
	Records  []core.Record
	Revision uint64
}

func New() *Store {
	return &Store{}
}

// Len returns the number of live records.
func (s *Store) Len() int {
	return len(s.records)
}

// Revision returns the store's current mutation counter.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Replace swaps in a freshly loaded collection. Every record gets a new
// stable ID matching its input position (0..n-1) and the default-value
// rules applied. The previous content is discarded wholesale; callers
// perform all fallible work (reading, schema translation) before calling
// so that a failed load leaves the store untouched.
func (s *Store) Replace(records []core.Record) {
	replaced := make([]core.Record, len(records))
	for i, r := range records {
		r.ID = int64(i)
		r.Normalize()
		replaced[i] = r
	}
	s.records = replaced
	s.nextID = int64(len(replaced))
	s.revision++
	slog.Info("Record store replaced", "records", len(replaced), "revision", s.revision)
}

// Add creates a record from the given fields and inserts it with the next
// unused stable ID, which it returns. Missing fields default: report name
// to the manual-entry sentinel, everything else per the normalization
// rules.
func (s *Store) Add(f core.Fields) int64 {
	r := core.Record{
		ID:         s.nextID,
		ReportName: core.ManualReportName,
	}
	applyFields(&r, f)
	r.Normalize()

	s.records = append(s.records, r)
	s.nextID++
	s.revision++
	slog.Info("Record added", "stable_id", r.ID, "category", r.Category)
	return r.ID
}

// Update overwrites only the provided fields of the record with the given
// stable ID. The ID itself and unspecified fields are untouched. Returns
// core.ErrNotFound when no live record carries the ID.
func (s *Store) Update(id int64, f core.Fields) error {
	i := s.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	applyFields(&s.records[i], f)
	s.records[i].Normalize()
	s.revision++
	slog.Info("Record updated", "stable_id", id)
	return nil
}

// Remove deletes the record with the given stable ID and reports whether
// it existed. Removing an unknown ID is a no-op, not an error.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.revision++
	slog.Info("Record removed", "stable_id", id)
	return true
}

// RemoveBatch deletes every listed ID that exists and returns the count
// actually deleted.
func (s *Store) RemoveBatch(ids []int64) int {
	deleted := 0
	for _, id := range ids {
		if s.Remove(id) {
			deleted++
		}
	}
	return deleted
}

// Get returns the record with the given stable ID.
func (s *Store) Get(id int64) (core.Record, bool) {
	i := s.index(id)
	if i < 0 {
		return core.Record{}, false
	}
	return s.records[i], true
}

// Snapshot copies the current collection. Record fields are value types
// (decimals are immutable), so a shallow slice copy isolates the caller
// from later mutations.
func (s *Store) Snapshot() Snapshot {
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return Snapshot{Records: out, Revision: s.revision}
}

func (s *Store) index(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func applyFields(r *core.Record, f core.Fields) {
	if f.ReportName != nil {
		r.ReportName = *f.ReportName
	}
	if f.Date != nil {
		r.Date = *f.Date
	}
	if f.Expense != nil {
		r.Expense = *f.Expense
	}
	if f.Income != nil {
		r.Income = *f.Income
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	if f.Category != nil {
		r.Category = *f.Category
	}
	if f.Merchant != nil {
		r.Merchant = *f.Merchant
	}
	if f.PaidThrough != nil {
		r.PaidThrough = *f.PaidThrough
	}
}
