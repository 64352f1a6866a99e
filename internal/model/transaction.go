package model

import "time"

type TransactionKind string

const (
	KindAllowance    TransactionKind = "allowance"
	KindTaskApproved TransactionKind = "task_approved"
	KindTaskMissed   TransactionKind = "task_missed"
	KindAdjustment   TransactionKind = "adjustment"
)

// Transaction is one append-only ledger row. AmountCents is signed:
// positive credits the child, negative debits. ValueDate is the calendar
// date the entry applies to (YYYY-MM-DD); for allowance entries it carries
// the once-per-day uniqueness.
type Transaction struct {
	ID          int64           `json:"id"`
	ChildID     int64           `json:"child_id"`
	AmountCents int64           `json:"amount_cents"`
	Kind        TransactionKind `json:"kind"`
	Memo        string          `json:"memo,omitempty"`
	ValueDate   string          `json:"value_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Balance is a computed sum over a child's transactions, never stored.
type Balance struct {
	ChildID      int64  `json:"child_id"`
	ChildName    string `json:"child_name"`
	BalanceCents int64  `json:"balance_cents"`
}
