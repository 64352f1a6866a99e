package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/chorebank/internal/model"
	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/taskflow"
	"github.com/dukerupert/chorebank/internal/websocket"
)

type SubmissionHandler struct {
	submissionStore *store.SubmissionStore
	instanceStore   *store.InstanceStore
	taskStore       *store.TaskStore
	service         *taskflow.Service
	hub             *websocket.Hub
}

func NewSubmissionHandler(ss *store.SubmissionStore, is *store.InstanceStore, ts *store.TaskStore, svc *taskflow.Service, hub *websocket.Hub) *SubmissionHandler {
	return &SubmissionHandler{submissionStore: ss, instanceStore: is, taskStore: ts, service: svc, hub: hub}
}

func (h *SubmissionHandler) broadcast(familyID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, msg)
	}
}

// familyOfInstance resolves an instance to its task's family for broadcasts.
// A zero return means the lookup failed; the broadcast is simply skipped.
func (h *SubmissionHandler) familyOfInstance(instanceID int64) int64 {
	inst, err := h.instanceStore.GetByID(instanceID)
	if err != nil || inst == nil {
		return 0
	}
	task, err := h.taskStore.GetByID(inst.TaskID)
	if err != nil || task == nil {
		return 0
	}
	return task.FamilyID
}

// Submit records a child's completion claim for an instance.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	instanceID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		ChildID  int64   `json:"child_id"`
		Note     *string `json:"note"`
		ProofURL *string `json:"proof_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ChildID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "child_id is required"})
		return
	}

	sub, err := h.service.Submit(instanceID, req.ChildID, req.Note, req.ProofURL)
	if err != nil {
		writeServiceError(w, err, "failed to submit task")
		return
	}

	if familyID := h.familyOfInstance(instanceID); familyID != 0 {
		h.broadcast(familyID, websocket.NewMessage("submission", "created", sub.ID, nil))
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Resolve approves or rejects a pending submission. The decision is in the
// URL, not the body, so the two actions get distinct routes.
func (h *SubmissionHandler) Resolve(approved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
			return
		}

		sub, err := h.submissionStore.GetByID(id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get submission"})
			return
		}
		if sub == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission not found"})
			return
		}

		result, err := h.service.Resolve(id, approved)
		if err != nil {
			writeServiceError(w, err, "failed to resolve submission")
			return
		}

		action := "rejected"
		if approved {
			action = "approved"
		}
		if familyID := h.familyOfInstance(sub.TaskInstanceID); familyID != 0 {
			h.broadcast(familyID, websocket.NewMessage("submission", action, id, map[string]any{
				"transaction_posted": result.TransactionPosted,
			}))
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (h *SubmissionHandler) ListByInstance(w http.ResponseWriter, r *http.Request) {
	instanceID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	subs, err := h.submissionStore.ListByInstance(instanceID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list submissions"})
		return
	}
	if subs == nil {
		subs = []model.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// ListPending returns a family's approval queue, oldest first.
func (h *SubmissionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	pending, err := h.submissionStore.ListPendingByFamily(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pending submissions"})
		return
	}
	if pending == nil {
		pending = []store.PendingDetail{}
	}
	writeJSON(w, http.StatusOK, pending)
}
