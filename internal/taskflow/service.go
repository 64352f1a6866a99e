package taskflow

import (
	"log/slog"
	"time"

	"github.com/dukerupert/chorebank/internal/store"
)

// Service runs the task lifecycle: instance generation, submission and
// approval, overdue sweeping, and allowance crediting. All money amounts
// are integer cents and every balance-affecting write is an append to the
// transactions ledger.
type Service struct {
	families    *store.FamilyStore
	tasks       *store.TaskStore
	instances   *store.InstanceStore
	submissions *store.SubmissionStore
	txns        *store.TransactionStore
	settings    *store.SettingsStore
	logger      *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

func NewService(
	families *store.FamilyStore,
	tasks *store.TaskStore,
	instances *store.InstanceStore,
	submissions *store.SubmissionStore,
	txns *store.TransactionStore,
	settings *store.SettingsStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		families:    families,
		tasks:       tasks,
		instances:   instances,
		submissions: submissions,
		txns:        txns,
		settings:    settings,
		logger:      logger,
		now:         time.Now,
	}
}
