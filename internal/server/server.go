package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/chorebank/internal/backup"
	"github.com/dukerupert/chorebank/internal/handler"
	"github.com/dukerupert/chorebank/internal/middleware"
	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/taskflow"
	ws "github.com/dukerupert/chorebank/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	familyH       *handler.FamilyHandler
	taskH         *handler.TaskHandler
	instanceH     *handler.InstanceHandler
	submissionH   *handler.SubmissionHandler
	transactionH  *handler.TransactionHandler
	settingsH     *handler.SettingsHandler
	jobsH         *handler.JobsHandler
	backupH       *handler.BackupHandler
	service       *taskflow.Service
	cron          *taskflow.Cron
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, jobHour int, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	familyStore := store.NewFamilyStore(db)
	taskStore := store.NewTaskStore(db)
	instanceStore := store.NewInstanceStore(db)
	submissionStore := store.NewSubmissionStore(db)
	txnStore := store.NewTransactionStore(db)
	settingsStore := store.NewSettingsStore(db)
	backupStore := store.NewBackupStore(db)

	service := taskflow.NewService(
		familyStore, taskStore, instanceStore, submissionStore, txnStore, settingsStore,
		logger.With("component", "taskflow"),
	)
	cron := taskflow.NewCron(service, jobHour, logger.With("component", "cron"))

	backupMgr := backup.NewManager(backupCfg, db, backupStore, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		familyH:       handler.NewFamilyHandler(familyStore, hub),
		taskH:         handler.NewTaskHandler(taskStore, familyStore, hub),
		instanceH:     handler.NewInstanceHandler(instanceStore, taskStore, service, hub),
		submissionH:   handler.NewSubmissionHandler(submissionStore, instanceStore, taskStore, service, hub),
		transactionH:  handler.NewTransactionHandler(txnStore, familyStore, hub),
		settingsH:     handler.NewSettingsHandler(settingsStore, hub),
		jobsH:         handler.NewJobsHandler(service),
		backupH:       handler.NewBackupHandler(backupMgr, backupStore),
		service:       service,
		cron:          cron,
		backupManager: backupMgr,
		logger:        logger,
	}
}

// Service returns the taskflow service.
func (s *Server) Service() *taskflow.Service {
	return s.service
}

// Cron returns the daily job runner.
func (s *Server) Cron() *taskflow.Cron {
	return s.cron
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Families and people
	mux.HandleFunc("POST /api/families", s.familyH.Create)
	mux.HandleFunc("GET /api/families", s.familyH.List)
	mux.HandleFunc("GET /api/families/{id}", s.familyH.Get)
	mux.HandleFunc("POST /api/families/{id}/parents", s.familyH.CreateParent)
	mux.HandleFunc("POST /api/families/{id}/children", s.familyH.CreateChild)
	mux.HandleFunc("GET /api/families/{id}/profiles", s.familyH.ListProfiles)
	mux.HandleFunc("GET /api/families/{id}/children", s.familyH.ListChildren)
	mux.HandleFunc("PUT /api/children/{id}/account", s.familyH.UpdateChildAccount)

	// Tasks
	mux.HandleFunc("POST /api/families/{id}/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/families/{id}/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Task instances
	mux.HandleFunc("POST /api/tasks/{id}/assign", s.instanceH.Assign)
	mux.HandleFunc("GET /api/instances/{id}", s.instanceH.Get)
	mux.HandleFunc("GET /api/children/{id}/instances", s.instanceH.ListByChild)
	mux.HandleFunc("GET /api/families/{id}/instances", s.instanceH.ListByFamily)

	// Submissions and approvals
	mux.HandleFunc("POST /api/instances/{id}/submissions", s.submissionH.Submit)
	mux.HandleFunc("GET /api/instances/{id}/submissions", s.submissionH.ListByInstance)
	mux.HandleFunc("GET /api/families/{id}/approvals", s.submissionH.ListPending)
	mux.HandleFunc("POST /api/submissions/{id}/approve", s.submissionH.Resolve(true))
	mux.HandleFunc("POST /api/submissions/{id}/reject", s.submissionH.Resolve(false))

	// Ledger
	mux.HandleFunc("GET /api/children/{id}/transactions", s.transactionH.Statement)
	mux.HandleFunc("GET /api/children/{id}/balance", s.transactionH.Balance)
	mux.HandleFunc("GET /api/families/{id}/balances", s.transactionH.FamilyBalances)
	mux.HandleFunc("POST /api/children/{id}/adjustments", s.transactionH.Adjust)

	// Family settings
	mux.HandleFunc("GET /api/families/{id}/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/families/{id}/settings", s.settingsH.Update)

	// Batch jobs (manual triggers; the cron runner fires these daily)
	mux.HandleFunc("POST /api/jobs/schedule", s.jobsH.RunScheduler)
	mux.HandleFunc("POST /api/jobs/sweep", s.jobsH.RunSweep)
	mux.HandleFunc("POST /api/jobs/allowance", s.jobsH.RunAllowance)

	// Backups
	mux.HandleFunc("POST /api/backups", s.backupH.Run)
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("POST /api/backups/{id}/restore", s.backupH.Restore)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
