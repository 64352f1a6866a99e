package model

// FamilySettings holds per-family knobs for the batch jobs. One row per
// family, created alongside it. WeeklyCloseWeekday uses time.Weekday
// numbering: 0 = Sunday .. 6 = Saturday.
type FamilySettings struct {
	FamilyID           int64 `json:"family_id"`
	WeeklyCloseWeekday int   `json:"weekly_close_weekday"`
	PenaltyOnMiss      bool  `json:"penalty_on_miss"`
}
