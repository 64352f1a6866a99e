package store

import (
	"testing"

	"github.com/dukerupert/chorebank/internal/model"
)

func TestTaskCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)

	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, true)

	got, err := NewTaskStore(db).GetByID(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got == nil {
		t.Fatal("task not found")
	}
	if got.Title != "Dishes" || got.RewardCents != 500 {
		t.Errorf("task = %q/%d, want Dishes/500", got.Title, got.RewardCents)
	}
	if got.Recurrence != model.RecurrenceDaily {
		t.Errorf("recurrence = %q, want daily", got.Recurrence)
	}
	if !got.ProofRequired {
		t.Error("proof_required should be true")
	}
	if !got.Active {
		t.Error("active should be true")
	}
}

func TestTaskGetNotFound(t *testing.T) {
	db := openTestDB(t)

	task, err := NewTaskStore(db).GetByID(42)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for missing task, got %+v", task)
	}
}

func TestListActiveRecurring(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	family := seedFamily(t, db)

	daily := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)
	seedTask(t, db, family.ID, "One-off", 100, model.RecurrenceNone, false)

	if _, err := ts.Create(family.ID, "Paused", "", 200, model.RecurrenceWeekly, false, false); err != nil {
		t.Fatalf("create inactive task: %v", err)
	}

	tasks, err := ts.ListActiveRecurring()
	if err != nil {
		t.Fatalf("list active recurring: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].ID != daily.ID {
		t.Errorf("got task %d, want %d", tasks[0].ID, daily.ID)
	}
}

func TestTaskUpdate(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	updated, err := NewTaskStore(db).Update(task.ID, "Dishes and counters", "wipe them too", 750, model.RecurrenceWeekly, true, false)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Dishes and counters" || updated.RewardCents != 750 {
		t.Errorf("task = %q/%d after update", updated.Title, updated.RewardCents)
	}
	if updated.Active {
		t.Error("active should be false after update")
	}
}

func TestTaskDelete(t *testing.T) {
	db := openTestDB(t)
	ts := NewTaskStore(db)
	family := seedFamily(t, db)
	task := seedTask(t, db, family.ID, "Dishes", 500, model.RecurrenceNone, false)

	if err := ts.Delete(task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	got, err := ts.GetByID(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got != nil {
		t.Error("task should be gone after delete")
	}
}
