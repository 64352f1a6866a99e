package taskflow

import (
	"time"

	"github.com/dukerupert/chorebank/internal/model"
)

// ScheduleResult reports how many instances a scheduler run created.
type ScheduleResult struct {
	Created int `json:"created"`
}

// ScheduleRecurringInstances materializes the next dated instance of every
// active recurring task for every child in the task's family. The unique
// index on (task_id, child_id, due_date) makes the run idempotent; per-row
// failures are logged and skipped so one bad row never blocks the batch.
func (s *Service) ScheduleRecurringInstances() (ScheduleResult, error) {
	var res ScheduleResult

	tasks, err := s.tasks.ListActiveRecurring()
	if err != nil {
		return res, err
	}

	runDate := s.now()
	childrenByFamily := make(map[int64][]model.Child)

	for _, task := range tasks {
		dueDate, ok := NextDueDate(string(task.Recurrence), runDate)
		if !ok {
			continue
		}

		children, cached := childrenByFamily[task.FamilyID]
		if !cached {
			children, err = s.families.ListChildrenByFamily(task.FamilyID)
			if err != nil {
				s.logger.Error("list children", "family_id", task.FamilyID, "error", err)
				continue
			}
			childrenByFamily[task.FamilyID] = children
		}

		for _, child := range children {
			inserted, err := s.instances.Insert(task.ID, child.ID, dueDate)
			if err != nil {
				s.logger.Error("create instance", "task_id", task.ID, "child_id", child.ID, "due_date", dueDate, "error", err)
				continue
			}
			if inserted {
				res.Created++
			}
		}
	}

	s.logger.Info("scheduled recurring instances", "created", res.Created, "tasks", len(tasks))
	return res, nil
}

// AssignInstances creates instances of one task for the given children on an
// explicit due date. Every child must be a child profile in the task's
// family; any mismatch rejects the whole batch before a single insert.
func (s *Service) AssignInstances(taskID int64, childIDs []int64, dueDate string) (ScheduleResult, error) {
	var res ScheduleResult

	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		return res, err
	}
	if task == nil {
		return res, ErrNotFound
	}

	if len(childIDs) == 0 {
		return res, validationf("at least one child is required")
	}
	if _, err := time.Parse(DateLayout, dueDate); err != nil {
		return res, validationf("due_date must be a %s date", DateLayout)
	}

	for _, childID := range childIDs {
		child, err := s.families.GetChildByID(childID)
		if err != nil {
			return res, err
		}
		if child == nil || child.FamilyID != task.FamilyID {
			return res, validationf("child %d does not belong to the task's family", childID)
		}
	}

	for _, childID := range childIDs {
		inserted, err := s.instances.Insert(taskID, childID, dueDate)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Created++
		}
	}

	return res, nil
}
