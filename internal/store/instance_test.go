package store

import (
	"testing"

	"github.com/dukerupert/chorebank/internal/model"
)

func TestInstanceInsertIdempotent(t *testing.T) {
	db := openTestDB(t)
	is := NewInstanceStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	inserted, err := is.Insert(task.ID, child.ID, "2026-09-01")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatal("first insert should report true")
	}

	inserted, err = is.Insert(task.ID, child.ID, "2026-09-01")
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if inserted {
		t.Error("duplicate insert should report false")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM task_instances`).Scan(&count); err != nil {
		t.Fatalf("count instances: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 instance, got %d", count)
	}
}

func TestInstanceListByFamilyStatusFilter(t *testing.T) {
	db := openTestDB(t)
	is := NewInstanceStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	seedInstance(t, db, task.ID, child.ID, "2026-09-01")
	inst := seedInstance(t, db, task.ID, child.ID, "2026-08-01")

	if _, err := is.MarkOverdue(inst.ID); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}

	all, err := is.ListByFamily(family.ID, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(all))
	}
	if all[0].TaskTitle != "Dishes" || all[0].RewardCents != 500 {
		t.Errorf("detail join = %q/%d, want Dishes/500", all[0].TaskTitle, all[0].RewardCents)
	}

	pending, err := is.ListByFamily(family.ID, model.InstancePending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending instance, got %d", len(pending))
	}
	if pending[0].DueDate != "2026-09-01" {
		t.Errorf("pending due_date = %q, want 2026-09-01", pending[0].DueDate)
	}
}

func TestListOverduePending(t *testing.T) {
	db := openTestDB(t)
	is := NewInstanceStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	seedInstance(t, db, task.ID, child.ID, "2026-08-28")
	seedInstance(t, db, task.ID, child.ID, "2026-08-30") // due today, not overdue
	seedInstance(t, db, task.ID, child.ID, "2026-09-01")

	candidates, err := is.ListOverduePending("2026-08-30")
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 overdue candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.DueDate != "2026-08-28" || c.RewardCents != 500 || c.FamilyID != family.ID {
		t.Errorf("candidate = %+v", c)
	}
}

func TestMarkOverdueOnlyPending(t *testing.T) {
	db := openTestDB(t)
	is := NewInstanceStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)
	inst := seedInstance(t, db, task.ID, child.ID, "2026-08-28")

	flipped, err := is.MarkOverdue(inst.ID)
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if !flipped {
		t.Fatal("first mark should report true")
	}

	flipped, err = is.MarkOverdue(inst.ID)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if flipped {
		t.Error("second mark should report false")
	}

	got, err := is.GetByID(inst.ID)
	if err != nil {
		t.Fatalf("get instance: %v", err)
	}
	if got.Status != model.InstanceOverdue {
		t.Errorf("status = %q, want overdue", got.Status)
	}
}
