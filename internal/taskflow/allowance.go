package taskflow

// AllowanceResult reports one weekly allowance run.
type AllowanceResult struct {
	FamiliesProcessed int   `json:"families_processed"`
	ChildrenCredited  int   `json:"children_credited"`
	TotalCreditsCents int64 `json:"total_credits_cents"`
}

// CreditWeeklyAllowance credits a quarter of the monthly allowance (rounded
// to the nearest cent) to every child of every family whose configured close
// weekday is today. The allowance uniqueness index makes a same-day rerun a
// no-op per child.
func (s *Service) CreditWeeklyAllowance() (AllowanceResult, error) {
	var res AllowanceResult

	now := s.now()
	today := DateOf(now)
	weekday := int(now.Weekday())

	families, err := s.settings.ListByCloseWeekday(weekday)
	if err != nil {
		return res, err
	}
	res.FamiliesProcessed = len(families)

	for _, fs := range families {
		children, err := s.families.ListChildrenByFamily(fs.FamilyID)
		if err != nil {
			s.logger.Error("list children", "family_id", fs.FamilyID, "error", err)
			continue
		}

		for _, child := range children {
			// round(monthly / 4) in integer cents.
			weekly := (child.MonthlyAllowanceCents + 2) / 4
			if weekly <= 0 {
				continue
			}

			credited, err := s.txns.AppendAllowance(child.ID, weekly, "Weekly allowance - "+today, today)
			if err != nil {
				s.logger.Error("post allowance", "child_id", child.ID, "error", err)
				continue
			}
			if credited {
				res.ChildrenCredited++
				res.TotalCreditsCents += weekly
			}
		}
	}

	s.logger.Info("weekly allowance complete",
		"families", res.FamiliesProcessed,
		"children_credited", res.ChildrenCredited,
		"total_cents", res.TotalCreditsCents)
	return res, nil
}
