package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

type InstanceStore struct {
	db *sql.DB
}

func NewInstanceStore(db *sql.DB) *InstanceStore {
	return &InstanceStore{db: db}
}

func scanInstance(scanner interface{ Scan(...any) error }) (*model.TaskInstance, error) {
	var i model.TaskInstance
	err := scanner.Scan(
		&i.ID, &i.TaskID, &i.ChildID, &i.DueDate, &i.Status,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const instanceCols = `id, task_id, child_id, due_date, status, created_at, updated_at`

// Insert creates a pending instance for (task, child, dueDate). The unique
// index on that triple makes re-runs idempotent: a duplicate insert is a
// no-op and Insert reports false.
func (s *InstanceStore) Insert(taskID, childID int64, dueDate string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO task_instances (task_id, child_id, due_date) VALUES (?, ?, ?)
		 ON CONFLICT (task_id, child_id, due_date) DO NOTHING`,
		taskID, childID, dueDate,
	)
	if err != nil {
		return false, fmt.Errorf("insert instance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *InstanceStore) GetByID(id int64) (*model.TaskInstance, error) {
	row := s.db.QueryRow(`SELECT `+instanceCols+` FROM task_instances WHERE id = ?`, id)
	i, err := scanInstance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get instance: %w", err)
	}
	return i, nil
}

// InstanceDetail is an instance joined with the fields of its task that
// list views need.
type InstanceDetail struct {
	model.TaskInstance
	TaskTitle     string `json:"task_title"`
	RewardCents   int64  `json:"reward_cents"`
	ProofRequired bool   `json:"proof_required"`
}

const instanceDetailCols = `i.id, i.task_id, i.child_id, i.due_date, i.status, i.created_at, i.updated_at, t.title, t.reward_cents, t.proof_required`

func scanInstanceDetail(scanner interface{ Scan(...any) error }) (*InstanceDetail, error) {
	var d InstanceDetail
	var proofRequired int
	err := scanner.Scan(
		&d.ID, &d.TaskID, &d.ChildID, &d.DueDate, &d.Status,
		&d.CreatedAt, &d.UpdatedAt, &d.TaskTitle, &d.RewardCents, &proofRequired,
	)
	if err != nil {
		return nil, err
	}
	d.ProofRequired = proofRequired != 0
	return &d, nil
}

func (s *InstanceStore) listDetails(query string, args ...any) ([]InstanceDetail, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []InstanceDetail
	for rows.Next() {
		d, err := scanInstanceDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

func (s *InstanceStore) ListByChild(childID int64) ([]InstanceDetail, error) {
	details, err := s.listDetails(
		`SELECT `+instanceDetailCols+` FROM task_instances i JOIN tasks t ON t.id = i.task_id
		 WHERE i.child_id = ? ORDER BY i.due_date ASC, i.id ASC`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list instances by child: %w", err)
	}
	return details, nil
}

func (s *InstanceStore) ListByFamily(familyID int64, status model.InstanceStatus) ([]InstanceDetail, error) {
	query := `SELECT ` + instanceDetailCols + ` FROM task_instances i JOIN tasks t ON t.id = i.task_id
		 WHERE t.family_id = ?`
	args := []any{familyID}
	if status != "" {
		query += ` AND i.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY i.due_date ASC, i.id ASC`

	details, err := s.listDetails(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list instances by family: %w", err)
	}
	return details, nil
}

// OverdueCandidate is a pending instance past its due date, joined with the
// task fields the sweeper needs to decide on a penalty.
type OverdueCandidate struct {
	InstanceID  int64
	ChildID     int64
	DueDate     string
	TaskID      int64
	TaskTitle   string
	RewardCents int64
	FamilyID    int64
}

// ListOverduePending returns pending instances with due_date strictly before
// today (a YYYY-MM-DD date).
func (s *InstanceStore) ListOverduePending(today string) ([]OverdueCandidate, error) {
	rows, err := s.db.Query(
		`SELECT i.id, i.child_id, i.due_date, t.id, t.title, t.reward_cents, t.family_id
		 FROM task_instances i JOIN tasks t ON t.id = i.task_id
		 WHERE i.status = 'pending' AND i.due_date < ?
		 ORDER BY i.due_date ASC, i.id ASC`,
		today,
	)
	if err != nil {
		return nil, fmt.Errorf("list overdue pending: %w", err)
	}
	defer rows.Close()

	var candidates []OverdueCandidate
	for rows.Next() {
		var c OverdueCandidate
		if err := rows.Scan(&c.InstanceID, &c.ChildID, &c.DueDate, &c.TaskID, &c.TaskTitle, &c.RewardCents, &c.FamilyID); err != nil {
			return nil, fmt.Errorf("scan overdue candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// MarkOverdue flips a still-pending instance to overdue. It reports false if
// the instance was no longer pending, which makes the sweep idempotent.
func (s *InstanceStore) MarkOverdue(id int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE task_instances SET status = 'overdue', updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'pending'`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("mark overdue: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
