package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

type SubmissionStore struct {
	db *sql.DB
}

func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

func scanSubmission(scanner interface{ Scan(...any) error }) (*model.Submission, error) {
	var s model.Submission
	var proofURL, note sql.NullString

	err := scanner.Scan(
		&s.ID, &s.TaskInstanceID, &s.SubmittedBy, &proofURL, &note,
		&s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if proofURL.Valid {
		s.ProofURL = &proofURL.String
	}
	if note.Valid {
		s.Note = &note.String
	}
	return &s, nil
}

const submissionCols = `id, task_instance_id, submitted_by, proof_url, note, status, created_at`

// Create inserts a pending submission and marks its instance submitted in
// one transaction. It reports false without inserting anything if the
// instance was not pending, so a double submit never stacks submissions.
func (s *SubmissionStore) Create(instanceID, submittedBy int64, proofURL, note *string) (*model.Submission, bool, error) {
	var pu, n sql.NullString
	if proofURL != nil {
		pu = sql.NullString{String: *proofURL, Valid: true}
	}
	if note != nil {
		n = sql.NullString{String: *note, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE task_instances SET status = 'submitted', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'`,
		instanceID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("mark submitted: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, false, nil
	}

	result, err = tx.Exec(
		`INSERT INTO submissions (task_instance_id, submitted_by, proof_url, note) VALUES (?, ?, ?, ?)`,
		instanceID, submittedBy, pu, n,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert submission: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}

	sub, err := s.GetByID(id)
	if err != nil {
		return nil, false, err
	}
	return sub, true, nil
}

func (s *SubmissionStore) GetByID(id int64) (*model.Submission, error) {
	row := s.db.QueryRow(`SELECT `+submissionCols+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

func (s *SubmissionStore) ListByInstance(instanceID int64) ([]model.Submission, error) {
	rows, err := s.db.Query(
		`SELECT `+submissionCols+` FROM submissions WHERE task_instance_id = ? ORDER BY created_at DESC, id DESC`,
		instanceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

// PendingDetail is a pending submission joined with the context a parent
// needs to review it.
type PendingDetail struct {
	model.Submission
	TaskTitle   string `json:"task_title"`
	RewardCents int64  `json:"reward_cents"`
	ChildName   string `json:"child_name"`
	DueDate     string `json:"due_date"`
}

// ListPendingByFamily returns the family's approval queue, oldest first.
func (s *SubmissionStore) ListPendingByFamily(familyID int64) ([]PendingDetail, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.task_instance_id, s.submitted_by, s.proof_url, s.note, s.status, s.created_at,
		        t.title, t.reward_cents, p.display_name, i.due_date
		 FROM submissions s
		 JOIN task_instances i ON i.id = s.task_instance_id
		 JOIN tasks t ON t.id = i.task_id
		 JOIN profiles p ON p.id = s.submitted_by
		 WHERE s.status = 'pending' AND t.family_id = ?
		 ORDER BY s.created_at ASC, s.id ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	defer rows.Close()

	var details []PendingDetail
	for rows.Next() {
		var d PendingDetail
		var proofURL, note sql.NullString
		if err := rows.Scan(
			&d.ID, &d.TaskInstanceID, &d.SubmittedBy, &proofURL, &note, &d.Status, &d.CreatedAt,
			&d.TaskTitle, &d.RewardCents, &d.ChildName, &d.DueDate,
		); err != nil {
			return nil, fmt.Errorf("scan pending submission: %w", err)
		}
		if proofURL.Valid {
			d.ProofURL = &proofURL.String
		}
		if note.Valid {
			d.Note = &note.String
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Resolve finalizes a pending submission: submission status, instance
// status, and the optional reward credit are written in one transaction.
// It reports false without writing anything if the submission was no longer
// pending, so a second resolve can never double-credit the ledger.
func (s *SubmissionStore) Resolve(id, instanceID int64, status model.InstanceStatus, credit *model.Transaction) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE submissions SET status = ? WHERE id = ? AND status = 'pending'`,
		string(status), id,
	)
	if err != nil {
		return false, fmt.Errorf("update submission: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.Exec(
		`UPDATE task_instances SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), instanceID,
	); err != nil {
		return false, fmt.Errorf("update instance: %w", err)
	}

	if credit != nil {
		if _, err := tx.Exec(
			`INSERT INTO transactions (child_id, amount_cents, kind, memo, value_date) VALUES (?, ?, ?, ?, ?)`,
			credit.ChildID, credit.AmountCents, credit.Kind, credit.Memo, credit.ValueDate,
		); err != nil {
			return false, fmt.Errorf("insert reward credit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
