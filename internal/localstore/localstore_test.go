package localstore

import (
	"testing"

	"github.com/claude/volumeopt/internal/volume"
)

func TestRecordAndRecent(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	reqs := []volume.Request{
		{MuscleGroup: volume.Chest, TrainingLevel: volume.Intermediate, CurrentSets: 10, Progress: false, Recovered: true},
		{MuscleGroup: volume.Back, TrainingLevel: volume.Beginner, CurrentSets: 8, Progress: true, Recovered: false},
		{MuscleGroup: volume.Chest, TrainingLevel: volume.Advanced, CurrentSets: 30, Progress: true, Recovered: true},
	}
	for _, req := range reqs {
		rec, err := volume.Recommend(req)
		if err != nil {
			t.Fatalf("Recommend(%+v): %v", req, err)
		}
		if err := db.Record(req, rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := db.Recent("", 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("entries = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].MuscleGroup != "chest" || all[0].CurrentSets != 30 {
		t.Errorf("first entry = %+v, want the chest/30 request", all[0])
	}

	chest, err := db.Recent("chest", 50)
	if err != nil {
		t.Fatalf("Recent(chest): %v", err)
	}
	if len(chest) != 2 {
		t.Errorf("chest entries = %d, want 2", len(chest))
	}

	limited, err := db.Recent("", 1)
	if err != nil {
		t.Fatalf("Recent(limit 1): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited entries = %d, want 1", len(limited))
	}
}

func TestRecordNilTarget(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	req := volume.Request{MuscleGroup: volume.Quads, TrainingLevel: volume.Intermediate, CurrentSets: 15, Progress: true, Recovered: true}
	rec, err := volume.Recommend(req)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.TargetSets != nil {
		t.Fatalf("expected nil target for a no-change case, got %d", *rec.TargetSets)
	}
	if err := db.Record(req, rec); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := db.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].TargetSets != nil {
		t.Errorf("target = %v, want nil", *entries[0].TargetSets)
	}
	if entries[0].Outcome != "no_change" {
		t.Errorf("outcome = %s, want no_change", entries[0].Outcome)
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/state"
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()
}
