package taskflow

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dukerupert/chorebank/internal/database"
	"github.com/dukerupert/chorebank/internal/model"
	"github.com/dukerupert/chorebank/internal/store"
)

// 2026-08-30 is a Sunday, which matches the default weekly close weekday.
var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db          *sql.DB
	families    *store.FamilyStore
	tasks       *store.TaskStore
	instances   *store.InstanceStore
	submissions *store.SubmissionStore
	txns        *store.TransactionStore
	settings    *store.SettingsStore
	svc         *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:          db,
		families:    store.NewFamilyStore(db),
		tasks:       store.NewTaskStore(db),
		instances:   store.NewInstanceStore(db),
		submissions: store.NewSubmissionStore(db),
		txns:        store.NewTransactionStore(db),
		settings:    store.NewSettingsStore(db),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.families, f.tasks, f.instances, f.submissions, f.txns, f.settings, logger)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) family(t *testing.T) *model.Family {
	t.Helper()
	family, err := f.families.CreateFamily("Testers", "")
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	return family
}

func (f *fixture) child(t *testing.T, familyID int64, name string, monthlyCents int64, rewardsEnabled bool) *model.Child {
	t.Helper()
	child, err := f.families.CreateChild(familyID, name, monthlyCents, rewardsEnabled)
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func (f *fixture) task(t *testing.T, familyID int64, title string, rewardCents int64, recurrence model.Recurrence, proofRequired bool) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(familyID, title, "", rewardCents, recurrence, proofRequired, true)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (f *fixture) instance(t *testing.T, taskID, childID int64, dueDate string) *model.TaskInstance {
	t.Helper()
	if _, err := f.instances.Insert(taskID, childID, dueDate); err != nil {
		t.Fatalf("insert instance: %v", err)
	}
	var id int64
	err := f.db.QueryRow(
		`SELECT id FROM task_instances WHERE task_id = ? AND child_id = ? AND due_date = ?`,
		taskID, childID, dueDate,
	).Scan(&id)
	if err != nil {
		t.Fatalf("find instance: %v", err)
	}
	inst, err := f.instances.GetByID(id)
	if err != nil {
		t.Fatalf("get instance: %v", err)
	}
	return inst
}

func (f *fixture) instanceStatus(t *testing.T, id int64) model.InstanceStatus {
	t.Helper()
	inst, err := f.instances.GetByID(id)
	if err != nil {
		t.Fatalf("get instance: %v", err)
	}
	return inst.Status
}

func (f *fixture) balance(t *testing.T, childID int64) int64 {
	t.Helper()
	balance, err := f.txns.BalanceFor(childID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return balance
}
