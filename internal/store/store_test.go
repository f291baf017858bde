package store

import (
	"errors"
	"testing"
	"time"

	"ledgerdesk/internal/core"
)

func dated(y int, m time.Month, d int) core.Record {
	return core.Record{Date: core.NewDate(y, m, d), Category: "Food", Merchant: "Cafe"}
}

func TestReplaceAssignsPositionalIDs(t *testing.T) {
	s := New()
	s.Replace([]core.Record{
		dated(2024, time.January, 1),
		dated(2024, time.January, 2),
		dated(2024, time.January, 3),
	})

	snap := s.Snapshot()
	if len(snap.Records) != 3 {
		t.Fatalf("len=%d, want 3", len(snap.Records))
	}
	for i, r := range snap.Records {
		if r.ID != int64(i) {
			t.Fatalf("record %d has ID %d", i, r.ID)
		}
	}
}

func TestReplaceNormalizes(t *testing.T) {
	s := New()
	s.Replace([]core.Record{{Date: core.NewDate(2024, time.May, 1)}})
	r, ok := s.Get(0)
	if !ok {
		t.Fatal("record not found")
	}
	if r.Category != core.DefaultCategory || r.Merchant != core.DefaultMerchant {
		t.Fatalf("sentinels not applied: %+v", r)
	}
}

func TestAddAssignsFreshIDs(t *testing.T) {
	s := New()
	s.Replace([]core.Record{dated(2024, time.January, 1), dated(2024, time.January, 2)})

	id := s.Add(core.Fields{})
	if id != 2 {
		t.Fatalf("first added ID=%d, want 2", id)
	}

	// Removing the newest record must not let its ID be reused.
	if !s.Remove(id) {
		t.Fatal("remove failed")
	}
	if next := s.Add(core.Fields{}); next != 3 {
		t.Fatalf("ID after remove=%d, want 3", next)
	}
}

func TestAddDefaults(t *testing.T) {
	s := New()
	id := s.Add(core.Fields{})
	r, _ := s.Get(id)
	if r.ReportName != core.ManualReportName {
		t.Fatalf("report name=%q, want %q", r.ReportName, core.ManualReportName)
	}
	if r.Category != core.DefaultCategory || r.Merchant != core.DefaultMerchant {
		t.Fatalf("defaults missing: %+v", r)
	}
	if !r.Date.IsEmpty() {
		t.Fatalf("date should be empty, got %s", r.Date)
	}
}

func TestUpdatePartial(t *testing.T) {
	s := New()
	s.Replace([]core.Record{dated(2024, time.January, 1)})

	desc := "lunch"
	if err := s.Update(0, core.Fields{Description: &desc}); err != nil {
		t.Fatalf("update: %v", err)
	}
	r, _ := s.Get(0)
	if r.Description != "lunch" {
		t.Fatalf("description=%q", r.Description)
	}
	if r.Category != "Food" {
		t.Fatalf("untouched field changed: %q", r.Category)
	}

	if err := s.Update(99, core.Fields{Description: &desc}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveTwice(t *testing.T) {
	s := New()
	s.Replace([]core.Record{dated(2024, time.January, 1)})

	if !s.Remove(0) {
		t.Fatal("first remove should succeed")
	}
	if s.Remove(0) {
		t.Fatal("second remove should be a no-op")
	}
	if s.Len() != 0 {
		t.Fatalf("len=%d, want 0", s.Len())
	}
}

func TestRemoveBatchCountsExisting(t *testing.T) {
	s := New()
	s.Replace([]core.Record{dated(2024, time.January, 1), dated(2024, time.January, 2)})
	if n := s.RemoveBatch([]int64{0, 1, 7}); n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.Replace([]core.Record{dated(2024, time.January, 1)})
	snap := s.Snapshot()

	desc := "changed"
	if err := s.Update(0, core.Fields{Description: &desc}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if snap.Records[0].Description == "changed" {
		t.Fatal("snapshot saw later mutation")
	}
}

func TestRevisionAdvances(t *testing.T) {
	s := New()
	before := s.Revision()
	s.Replace(nil)
	s.Add(core.Fields{})
	if s.Revision() != before+2 {
		t.Fatalf("revision=%d, want %d", s.Revision(), before+2)
	}
}
