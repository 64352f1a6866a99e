package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/chorebank/internal/model"
)

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func scanSettings(scanner interface{ Scan(...any) error }) (*model.FamilySettings, error) {
	var fs model.FamilySettings
	var penalty int
	err := scanner.Scan(&fs.FamilyID, &fs.WeeklyCloseWeekday, &penalty)
	if err != nil {
		return nil, err
	}
	fs.PenaltyOnMiss = penalty != 0
	return &fs, nil
}

const settingsCols = `family_id, weekly_close_weekday, penalty_on_miss`

func (s *SettingsStore) GetByFamily(familyID int64) (*model.FamilySettings, error) {
	row := s.db.QueryRow(`SELECT `+settingsCols+` FROM settings WHERE family_id = ?`, familyID)
	fs, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return fs, nil
}

func (s *SettingsStore) Update(familyID int64, weeklyCloseWeekday int, penaltyOnMiss bool) (*model.FamilySettings, error) {
	var penalty int
	if penaltyOnMiss {
		penalty = 1
	}

	_, err := s.db.Exec(
		`UPDATE settings SET weekly_close_weekday = ?, penalty_on_miss = ? WHERE family_id = ?`,
		weeklyCloseWeekday, penalty, familyID,
	)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return s.GetByFamily(familyID)
}

// ListByCloseWeekday returns the settings of every family whose weekly close
// falls on the given weekday (0 = Sunday .. 6 = Saturday).
func (s *SettingsStore) ListByCloseWeekday(weekday int) ([]model.FamilySettings, error) {
	rows, err := s.db.Query(
		`SELECT `+settingsCols+` FROM settings WHERE weekly_close_weekday = ? ORDER BY family_id ASC`,
		weekday,
	)
	if err != nil {
		return nil, fmt.Errorf("list settings by weekday: %w", err)
	}
	defer rows.Close()

	var all []model.FamilySettings
	for rows.Next() {
		fs, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		all = append(all, *fs)
	}
	return all, rows.Err()
}
