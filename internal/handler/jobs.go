package handler

import (
	"net/http"

	"github.com/dukerupert/chorebank/internal/taskflow"
)

// JobsHandler exposes the daily batch jobs for manual triggering. All three
// jobs are idempotent, so hitting these endpoints repeatedly is safe.
type JobsHandler struct {
	service *taskflow.Service
}

func NewJobsHandler(svc *taskflow.Service) *JobsHandler {
	return &JobsHandler{service: svc}
}

func (h *JobsHandler) RunScheduler(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ScheduleRecurringInstances()
	if err != nil {
		writeServiceError(w, err, "scheduler run failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *JobsHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepOverdue()
	if err != nil {
		writeServiceError(w, err, "overdue sweep failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *JobsHandler) RunAllowance(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CreditWeeklyAllowance()
	if err != nil {
		writeServiceError(w, err, "allowance run failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
