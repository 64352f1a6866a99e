package taskflow

import "github.com/dukerupert/chorebank/internal/model"

// SweepResult reports one overdue sweep.
type SweepResult struct {
	Processed int `json:"processed"`
	Penalties int `json:"penalties"`
}

// SweepOverdue flags every pending instance whose due date is strictly
// before today as overdue, and posts a penalty debit of half the reward
// (floored to the cent) when the family has penalty_on_miss enabled.
// Only pending instances are touched, so a rerun never double-penalizes.
func (s *Service) SweepOverdue() (SweepResult, error) {
	var res SweepResult

	today := DateOf(s.now())
	candidates, err := s.instances.ListOverduePending(today)
	if err != nil {
		return res, err
	}

	penaltyByFamily := make(map[int64]bool)

	for _, c := range candidates {
		flipped, err := s.instances.MarkOverdue(c.InstanceID)
		if err != nil {
			s.logger.Error("mark overdue", "instance_id", c.InstanceID, "error", err)
			continue
		}
		if !flipped {
			// Resolved between selection and update.
			continue
		}
		res.Processed++

		enabled, known := penaltyByFamily[c.FamilyID]
		if !known {
			settings, err := s.settings.GetByFamily(c.FamilyID)
			if err != nil {
				s.logger.Error("get settings", "family_id", c.FamilyID, "error", err)
				continue
			}
			enabled = settings != nil && settings.PenaltyOnMiss
			penaltyByFamily[c.FamilyID] = enabled
		}
		if !enabled {
			continue
		}

		// Half the reward, floored. A zero-value task produces no ledger row.
		penalty := c.RewardCents / 2
		if penalty <= 0 {
			continue
		}

		if _, err := s.txns.Append(c.ChildID, -penalty, model.KindTaskMissed, "Missed task penalty: "+c.TaskTitle, today); err != nil {
			s.logger.Error("post penalty", "instance_id", c.InstanceID, "child_id", c.ChildID, "error", err)
			continue
		}
		res.Penalties++
	}

	s.logger.Info("overdue sweep complete", "processed", res.Processed, "penalties", res.Penalties)
	return res, nil
}
