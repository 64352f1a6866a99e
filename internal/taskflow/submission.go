package taskflow

import (
	"strings"

	"github.com/dukerupert/chorebank/internal/model"
)

// Submit records a child's completion attempt: it creates a pending
// submission and moves the instance to submitted, atomically. Proof is
// mandatory when the task requires it. Only a pending instance can be
// submitted; anything else is a conflict, so a double submit never stacks
// a second open submission.
func (s *Service) Submit(instanceID, childID int64, note, proofURL *string) (*model.Submission, error) {
	inst, err := s.instances.GetByID(instanceID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrNotFound
	}
	if inst.ChildID != childID {
		return nil, validationf("instance %d is not assigned to child %d", instanceID, childID)
	}

	task, err := s.tasks.GetByID(inst.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if task.ProofRequired && (proofURL == nil || strings.TrimSpace(*proofURL) == "") {
		return nil, validationf("task %q requires proof", task.Title)
	}

	sub, ok, err := s.submissions.Create(instanceID, childID, proofURL, note)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, conflictf("instance %d is %s, not pending", instanceID, inst.Status)
	}
	return sub, nil
}

// ResolveResult reports whether resolving a submission credited the ledger.
type ResolveResult struct {
	TransactionPosted bool `json:"transaction_posted"`
}

// Resolve approves or rejects a pending submission. Submission status,
// instance status, and the reward credit are one atomic unit; resolving a
// submission that is no longer pending is a conflict and never touches the
// ledger, so a concurrent second approve cannot double-credit.
func (s *Service) Resolve(submissionID int64, approved bool) (ResolveResult, error) {
	var res ResolveResult

	sub, err := s.submissions.GetByID(submissionID)
	if err != nil {
		return res, err
	}
	if sub == nil {
		return res, ErrNotFound
	}
	if sub.Status != model.SubmissionPending {
		return res, conflictf("submission %d is already %s", submissionID, sub.Status)
	}

	inst, err := s.instances.GetByID(sub.TaskInstanceID)
	if err != nil {
		return res, err
	}
	if inst == nil {
		return res, ErrNotFound
	}

	task, err := s.tasks.GetByID(inst.TaskID)
	if err != nil {
		return res, err
	}
	child, err := s.families.GetChildByID(inst.ChildID)
	if err != nil {
		return res, err
	}
	if task == nil || child == nil {
		return res, ErrNotFound
	}

	status := model.InstanceRejected
	var credit *model.Transaction
	if approved {
		status = model.InstanceApproved
		if child.RewardsEnabled && task.RewardCents > 0 {
			credit = &model.Transaction{
				ChildID:     child.ID,
				AmountCents: task.RewardCents,
				Kind:        model.KindTaskApproved,
				Memo:        "Task approved: " + task.Title,
				ValueDate:   DateOf(s.now()),
			}
		}
	}

	ok, err := s.submissions.Resolve(sub.ID, inst.ID, status, credit)
	if err != nil {
		return res, err
	}
	if !ok {
		return res, conflictf("submission %d was resolved concurrently", submissionID)
	}

	res.TransactionPosted = credit != nil
	s.logger.Info("submission resolved",
		"submission_id", sub.ID, "instance_id", inst.ID,
		"approved", approved, "transaction_posted", res.TransactionPosted)
	return res, nil
}
