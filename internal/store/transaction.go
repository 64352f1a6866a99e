package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

// TransactionStore appends and reads ledger rows. There are deliberately no
// update or delete methods; the schema rejects both.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func scanTransaction(scanner interface{ Scan(...any) error }) (*model.Transaction, error) {
	var t model.Transaction
	err := scanner.Scan(
		&t.ID, &t.ChildID, &t.AmountCents, &t.Kind, &t.Memo, &t.ValueDate, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const transactionCols = `id, child_id, amount_cents, kind, memo, value_date, created_at`

// Append writes one ledger row.
func (s *TransactionStore) Append(childID, amountCents int64, kind model.TransactionKind, memo, valueDate string) (*model.Transaction, error) {
	result, err := s.db.Exec(
		`INSERT INTO transactions (child_id, amount_cents, kind, memo, value_date) VALUES (?, ?, ?, ?, ?)`,
		childID, amountCents, kind, memo, valueDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// AppendAllowance writes an allowance credit for the given day. The partial
// unique index on (child_id, value_date) makes a same-day rerun a no-op;
// AppendAllowance reports whether a row was actually written.
func (s *TransactionStore) AppendAllowance(childID, amountCents int64, memo, valueDate string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO transactions (child_id, amount_cents, kind, memo, value_date) VALUES (?, ?, 'allowance', ?, ?)
		 ON CONFLICT (child_id, value_date) WHERE kind = 'allowance' DO NOTHING`,
		childID, amountCents, memo, valueDate,
	)
	if err != nil {
		return false, fmt.Errorf("insert allowance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *TransactionStore) GetByID(id int64) (*model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListByChild returns a child's statement, newest first.
func (s *TransactionStore) ListByChild(childID int64) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT `+transactionCols+` FROM transactions WHERE child_id = ? ORDER BY created_at DESC, id DESC`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}

// BalanceFor computes a child's balance as the sum of all their rows.
func (s *TransactionStore) BalanceFor(childID int64) (int64, error) {
	var balance sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE child_id = ?`,
		childID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return balance.Int64, nil
}

// FamilyBalances returns the computed balance for every child in a family.
func (s *TransactionStore) FamilyBalances(familyID int64) ([]model.Balance, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.display_name, COALESCE(SUM(tx.amount_cents), 0)
		 FROM profiles p
		 JOIN child_accounts c ON c.profile_id = p.id
		 LEFT JOIN transactions tx ON tx.child_id = p.id
		 WHERE p.family_id = ?
		 GROUP BY p.id, p.display_name
		 ORDER BY p.display_name ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("family balances: %w", err)
	}
	defer rows.Close()

	var balances []model.Balance
	for rows.Next() {
		var b model.Balance
		if err := rows.Scan(&b.ChildID, &b.ChildName, &b.BalanceCents); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
