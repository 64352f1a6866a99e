package taskflow

import (
	"errors"
	"testing"

	"github.com/dukerupert/chorebank/internal/model"
)

func TestScheduleRecurringInstances(t *testing.T) {
	f := newFixture(t)
	family := f.family(t)
	ada := f.child(t, family.ID, "Ada", 0, true)
	ben := f.child(t, family.ID, "Ben", 0, true)

	f.task(t, family.ID, "Dishes", 500, model.RecurrenceDaily, false)
	f.task(t, family.ID, "Laundry", 300, model.RecurrenceWeekly, false)
	f.task(t, family.ID, "One-off", 100, model.RecurrenceNone, false)

	result, err := f.svc.ScheduleRecurringInstances()
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	// 2 recurring tasks x 2 children.
	if result.Created != 4 {
		t.Errorf("created = %d, want 4", result.Created)
	}

	adaInstances, err := f.instances.ListByChild(ada.ID)
	if err != nil {
		t.Fatalf("list instances: %v", err)
	}
	if len(adaInstances) != 2 {
		t.Fatalf("expected 2 instances for ada, got %d", len(adaInstances))
	}
	for _, inst := range adaInstances {
		if inst.Status != model.InstancePending {
			t.Errorf("instance %d status = %q, want pending", inst.ID, inst.Status)
		}
	}
	// Daily task lands tomorrow.
	if adaInstances[0].DueDate != "2026-08-31" {
		t.Errorf("daily due date = %q, want 2026-08-31", adaInstances[0].DueDate)
	}

	benInstances, _ := f.instances.ListByChild(ben.ID)
	if len(benInstances) != 2 {
		t.Errorf("expected 2 instances for ben, got %d", len(benInstances))
	}
}

func TestScheduleRecurringInstancesIdempotent(t *testing.T) {
	f := newFixture(t)
	family := f.family(t)
	f.child(t, family.ID, "Ada", 0, true)
	f.task(t, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	first, err := f.svc.ScheduleRecurringInstances()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 1 {
		t.Fatalf("first run created = %d, want 1", first.Created)
	}

	second, err := f.svc.ScheduleRecurringInstances()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 {
		t.Errorf("second run created = %d, want 0", second.Created)
	}
}

func TestScheduleScopesChildrenToTaskFamily(t *testing.T) {
	f := newFixture(t)
	family := f.family(t)
	other := f.family(t)
	f.child(t, family.ID, "Ada", 0, true)
	outsider := f.child(t, other.ID, "Cleo", 0, true)

	f.task(t, family.ID, "Dishes", 500, model.RecurrenceDaily, false)

	result, err := f.svc.ScheduleRecurringInstances()
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}

	outsiderInstances, err := f.instances.ListByChild(outsider.ID)
	if err != nil {
		t.Fatalf("list instances: %v", err)
	}
	if len(outsiderInstances) != 0 {
		t.Errorf("child in another family got %d instances", len(outsiderInstances))
	}
}

func TestAssignInstances(t *testing.T) {
	f := newFixture(t)
	family := f.family(t)
	ada := f.child(t, family.ID, "Ada", 0, true)
	ben := f.child(t, family.ID, "Ben", 0, true)
	task := f.task(t, family.ID, "Clean garage", 1500, model.RecurrenceNone, false)

	result, err := f.svc.AssignInstances(task.ID, []int64{ada.ID, ben.ID}, "2026-09-05")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("created = %d, want 2", result.Created)
	}

	// Assigning the same date again is a no-op.
	result, err = f.svc.AssignInstances(task.ID, []int64{ada.ID}, "2026-09-05")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("reassign created = %d, want 0", result.Created)
	}
}

func TestAssignInstancesValidation(t *testing.T) {
	f := newFixture(t)
	family := f.family(t)
	other := f.family(t)
	ada := f.child(t, family.ID, "Ada", 0, true)
	outsider := f.child(t, other.ID, "Cleo", 0, true)
	task := f.task(t, family.ID, "Clean garage", 1500, model.RecurrenceNone, false)

	if _, err := f.svc.AssignInstances(999, []int64{ada.ID}, "2026-09-05"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing task: err = %v, want ErrNotFound", err)
	}

	var ve *ValidationError
	if _, err := f.svc.AssignInstances(task.ID, nil, "2026-09-05"); !errors.As(err, &ve) {
		t.Errorf("empty children: err = %v, want ValidationError", err)
	}
	if _, err := f.svc.AssignInstances(task.ID, []int64{ada.ID}, "Sep 5"); !errors.As(err, &ve) {
		t.Errorf("bad date: err = %v, want ValidationError", err)
	}

	// One cross-family child rejects the whole batch before any insert.
	if _, err := f.svc.AssignInstances(task.ID, []int64{ada.ID, outsider.ID}, "2026-09-05"); !errors.As(err, &ve) {
		t.Errorf("cross-family child: err = %v, want ValidationError", err)
	}
	adaInstances, _ := f.instances.ListByChild(ada.ID)
	if len(adaInstances) != 0 {
		t.Errorf("rejected batch still created %d instances", len(adaInstances))
	}
}
