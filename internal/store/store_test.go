package store

import (
	"database/sql"
	"testing"

	"github.com/dukerupert/chorebank/internal/database"
	"github.com/dukerupert/chorebank/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedFamily(t *testing.T, db *sql.DB) *model.Family {
	t.Helper()
	family, err := NewFamilyStore(db).CreateFamily("Testers", "test@example.com")
	if err != nil {
		t.Fatalf("seed family: %v", err)
	}
	return family
}

func seedChild(t *testing.T, db *sql.DB, familyID int64, name string, monthlyCents int64, rewardsEnabled bool) *model.Child {
	t.Helper()
	child, err := NewFamilyStore(db).CreateChild(familyID, name, monthlyCents, rewardsEnabled)
	if err != nil {
		t.Fatalf("seed child: %v", err)
	}
	return child
}

func seedTask(t *testing.T, db *sql.DB, familyID int64, title string, rewardCents int64, recurrence model.Recurrence, proofRequired bool) *model.Task {
	t.Helper()
	task, err := NewTaskStore(db).Create(familyID, title, "", rewardCents, recurrence, proofRequired, true)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func seedInstance(t *testing.T, db *sql.DB, taskID, childID int64, dueDate string) *model.TaskInstance {
	t.Helper()
	is := NewInstanceStore(db)
	inserted, err := is.Insert(taskID, childID, dueDate)
	if err != nil {
		t.Fatalf("seed instance: %v", err)
	}
	if !inserted {
		t.Fatalf("seed instance: duplicate (%d, %d, %s)", taskID, childID, dueDate)
	}

	var id int64
	err = db.QueryRow(
		`SELECT id FROM task_instances WHERE task_id = ? AND child_id = ? AND due_date = ?`,
		taskID, childID, dueDate,
	).Scan(&id)
	if err != nil {
		t.Fatalf("find seeded instance: %v", err)
	}

	inst, err := is.GetByID(id)
	if err != nil {
		t.Fatalf("get seeded instance: %v", err)
	}
	return inst
}
