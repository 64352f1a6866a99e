package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var proofRequired, active int

	err := scanner.Scan(
		&t.ID, &t.FamilyID, &t.Title, &t.Description, &t.RewardCents,
		&t.Recurrence, &proofRequired, &active, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ProofRequired = proofRequired != 0
	t.Active = active != 0
	return &t, nil
}

const taskCols = `id, family_id, title, description, reward_cents, recurrence, proof_required, active, created_at`

func (s *TaskStore) Create(familyID int64, title, description string, rewardCents int64, recurrence model.Recurrence, proofRequired, active bool) (*model.Task, error) {
	var pr, a int
	if proofRequired {
		pr = 1
	}
	if active {
		a = 1
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (family_id, title, description, reward_cents, recurrence, proof_required, active) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		familyID, title, description, rewardCents, recurrence, pr, a,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) ListByFamily(familyID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE family_id = ? ORDER BY active DESC, title ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListActiveRecurring returns every active task with a recurrence rule,
// across all families. This is the scheduler's work list.
func (s *TaskStore) ListActiveRecurring() ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT ` + taskCols + ` FROM tasks WHERE active = 1 AND recurrence != 'none' ORDER BY family_id ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active recurring tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id int64, title, description string, rewardCents int64, recurrence model.Recurrence, proofRequired, active bool) (*model.Task, error) {
	var pr, a int
	if proofRequired {
		pr = 1
	}
	if active {
		a = 1
	}

	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, reward_cents = ?, recurrence = ?, proof_required = ?, active = ? WHERE id = ?`,
		title, description, rewardCents, recurrence, pr, a, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
