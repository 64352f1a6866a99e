package model

import "time"

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ValidRecurrence reports whether s is one of the defined recurrence values.
func ValidRecurrence(s string) bool {
	switch Recurrence(s) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

type Task struct {
	ID            int64      `json:"id"`
	FamilyID      int64      `json:"family_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	RewardCents   int64      `json:"reward_cents"`
	Recurrence    Recurrence `json:"recurrence"`
	ProofRequired bool       `json:"proof_required"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
}

type InstanceStatus string

const (
	InstancePending   InstanceStatus = "pending"
	InstanceSubmitted InstanceStatus = "submitted"
	InstanceApproved  InstanceStatus = "approved"
	InstanceRejected  InstanceStatus = "rejected"
	InstanceOverdue   InstanceStatus = "overdue"
)

// Terminal reports whether the status admits no further transitions.
// Overdue is terminal: a lapsed instance cannot be resubmitted.
func (s InstanceStatus) Terminal() bool {
	return s == InstanceApproved || s == InstanceRejected || s == InstanceOverdue
}

// TaskInstance is one dated occurrence of a task for one child.
// DueDate is a calendar date in YYYY-MM-DD form with no time component.
type TaskInstance struct {
	ID        int64          `json:"id"`
	TaskID    int64          `json:"task_id"`
	ChildID   int64          `json:"child_id"`
	DueDate   string         `json:"due_date"`
	Status    InstanceStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

type Submission struct {
	ID             int64            `json:"id"`
	TaskInstanceID int64            `json:"task_instance_id"`
	SubmittedBy    int64            `json:"submitted_by"`
	ProofURL       *string          `json:"proof_url"`
	Note           *string          `json:"note"`
	Status         SubmissionStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}
