package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

type FamilyStore struct {
	db *sql.DB
}

func NewFamilyStore(db *sql.DB) *FamilyStore {
	return &FamilyStore{db: db}
}

// --- Family methods ---

func scanFamily(scanner interface{ Scan(...any) error }) (*model.Family, error) {
	var f model.Family
	err := scanner.Scan(&f.ID, &f.Name, &f.ContactEmail, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const familyCols = `id, name, contact_email, created_at`

// CreateFamily inserts a family together with its default settings row.
func (s *FamilyStore) CreateFamily(name, contactEmail string) (*model.Family, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO families (name, contact_email) VALUES (?, ?)`,
		name, contactEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO settings (family_id) VALUES (?)`, id); err != nil {
		return nil, fmt.Errorf("insert settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetFamilyByID(id)
}

func (s *FamilyStore) GetFamilyByID(id int64) (*model.Family, error) {
	row := s.db.QueryRow(`SELECT `+familyCols+` FROM families WHERE id = ?`, id)
	f, err := scanFamily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family: %w", err)
	}
	return f, nil
}

func (s *FamilyStore) ListFamilies() ([]model.Family, error) {
	rows, err := s.db.Query(`SELECT ` + familyCols + ` FROM families ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()

	var families []model.Family
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		families = append(families, *f)
	}
	return families, rows.Err()
}

// --- Profile methods ---

func scanProfile(scanner interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	err := scanner.Scan(&p.ID, &p.FamilyID, &p.Role, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const profileCols = `id, family_id, role, display_name, created_at`

func (s *FamilyStore) CreateParent(familyID int64, displayName string) (*model.Profile, error) {
	result, err := s.db.Exec(
		`INSERT INTO profiles (family_id, role, display_name) VALUES (?, 'parent', ?)`,
		familyID, displayName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert parent profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetProfileByID(id)
}

// CreateChild inserts a child profile and its child account in one
// transaction, so a child profile can never exist without an account.
func (s *FamilyStore) CreateChild(familyID int64, displayName string, monthlyAllowanceCents int64, rewardsEnabled bool) (*model.Child, error) {
	var re int
	if rewardsEnabled {
		re = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO profiles (family_id, role, display_name) VALUES (?, 'child', ?)`,
		familyID, displayName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert child profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO child_accounts (profile_id, monthly_allowance_cents, rewards_enabled) VALUES (?, ?, ?)`,
		id, monthlyAllowanceCents, re,
	); err != nil {
		return nil, fmt.Errorf("insert child account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetChildByID(id)
}

func (s *FamilyStore) GetProfileByID(id int64) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *FamilyStore) ListProfilesByFamily(familyID int64) ([]model.Profile, error) {
	rows, err := s.db.Query(
		`SELECT `+profileCols+` FROM profiles WHERE family_id = ? ORDER BY role ASC, display_name ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// --- Child account methods ---

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	var re int
	err := scanner.Scan(
		&c.ID, &c.FamilyID, &c.Role, &c.DisplayName, &c.CreatedAt,
		&c.MonthlyAllowanceCents, &re,
	)
	if err != nil {
		return nil, err
	}
	c.RewardsEnabled = re != 0
	return &c, nil
}

const childCols = `p.id, p.family_id, p.role, p.display_name, p.created_at, c.monthly_allowance_cents, c.rewards_enabled`

const childFrom = ` FROM profiles p JOIN child_accounts c ON c.profile_id = p.id`

func (s *FamilyStore) GetChildByID(id int64) (*model.Child, error) {
	row := s.db.QueryRow(`SELECT `+childCols+childFrom+` WHERE p.id = ?`, id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *FamilyStore) ListChildrenByFamily(familyID int64) ([]model.Child, error) {
	rows, err := s.db.Query(
		`SELECT `+childCols+childFrom+` WHERE p.family_id = ? ORDER BY p.display_name ASC`,
		familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

// UpdateChildAccount changes the allowance settings for a child.
func (s *FamilyStore) UpdateChildAccount(profileID, monthlyAllowanceCents int64, rewardsEnabled bool) (*model.Child, error) {
	var re int
	if rewardsEnabled {
		re = 1
	}

	_, err := s.db.Exec(
		`UPDATE child_accounts SET monthly_allowance_cents = ?, rewards_enabled = ? WHERE profile_id = ?`,
		monthlyAllowanceCents, re, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("update child account: %w", err)
	}
	return s.GetChildByID(profileID)
}
