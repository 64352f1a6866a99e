package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/chorebank/internal/model"
	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/taskflow"
	"github.com/dukerupert/chorebank/internal/websocket"
)

type InstanceHandler struct {
	instanceStore *store.InstanceStore
	taskStore     *store.TaskStore
	service       *taskflow.Service
	hub           *websocket.Hub
}

func NewInstanceHandler(is *store.InstanceStore, ts *store.TaskStore, svc *taskflow.Service, hub *websocket.Hub) *InstanceHandler {
	return &InstanceHandler{instanceStore: is, taskStore: ts, service: svc, hub: hub}
}

func (h *InstanceHandler) broadcast(familyID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, msg)
	}
}

// Assign creates instances of one task for specific children on a chosen due
// date. This is the manual counterpart to the recurring scheduler.
func (h *InstanceHandler) Assign(w http.ResponseWriter, r *http.Request) {
	taskID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		ChildIDs []int64 `json:"child_ids"`
		DueDate  string  `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	result, err := h.service.AssignInstances(taskID, req.ChildIDs, req.DueDate)
	if err != nil {
		writeServiceError(w, err, "failed to assign task")
		return
	}

	if task, err := h.taskStore.GetByID(taskID); err == nil && task != nil {
		h.broadcast(task.FamilyID, websocket.NewMessage("instance", "assigned", taskID, map[string]any{"created": result.Created}))
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	inst, err := h.instanceStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get instance"})
		return
	}
	if inst == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "instance not found"})
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// ListByChild returns a child's instances, each joined with its task's title
// and reward.
func (h *InstanceHandler) ListByChild(w http.ResponseWriter, r *http.Request) {
	childID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	instances, err := h.instanceStore.ListByChild(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list instances"})
		return
	}
	if instances == nil {
		instances = []store.InstanceDetail{}
	}
	writeJSON(w, http.StatusOK, instances)
}

// ListByFamily returns a family's instances, optionally filtered by a
// ?status= query parameter.
func (h *InstanceHandler) ListByFamily(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	status := model.InstanceStatus(r.URL.Query().Get("status"))
	switch status {
	case "", model.InstancePending, model.InstanceSubmitted, model.InstanceApproved, model.InstanceRejected, model.InstanceOverdue:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
		return
	}

	instances, err := h.instanceStore.ListByFamily(familyID, status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list instances"})
		return
	}
	if instances == nil {
		instances = []store.InstanceDetail{}
	}
	writeJSON(w, http.StatusOK, instances)
}
