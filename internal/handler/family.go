package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/chorebank/internal/model"
	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/taskflow"
	"github.com/dukerupert/chorebank/internal/websocket"
)

type FamilyHandler struct {
	familyStore *store.FamilyStore
	hub         *websocket.Hub
}

func NewFamilyHandler(fs *store.FamilyStore, hub *websocket.Hub) *FamilyHandler {
	return &FamilyHandler{familyStore: fs, hub: hub}
}

func (h *FamilyHandler) broadcast(familyID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, msg)
	}
}

type familyRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req familyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	family, err := h.familyStore.CreateFamily(req.Name, strings.TrimSpace(req.ContactEmail))
	if err != nil {
		log.Printf("failed to create family: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create family"})
		return
	}

	writeJSON(w, http.StatusCreated, family)
}

func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.familyStore.ListFamilies()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list families"})
		return
	}
	if families == nil {
		families = []model.Family{}
	}
	writeJSON(w, http.StatusOK, families)
}

func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	family, err := h.familyStore.GetFamilyByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get family"})
		return
	}
	if family == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "family not found"})
		return
	}
	writeJSON(w, http.StatusOK, family)
}

type parentRequest struct {
	DisplayName string `json:"display_name"`
}

func (h *FamilyHandler) CreateParent(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req parentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "display_name is required"})
		return
	}

	if ok := h.requireFamily(w, familyID); !ok {
		return
	}

	profile, err := h.familyStore.CreateParent(familyID, req.DisplayName)
	if err != nil {
		log.Printf("failed to create parent: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create parent"})
		return
	}

	h.broadcast(familyID, websocket.NewMessage("profile", "created", profile.ID, nil))

	writeJSON(w, http.StatusCreated, profile)
}

type childRequest struct {
	DisplayName           string `json:"display_name"`
	MonthlyAllowanceCents int64  `json:"monthly_allowance_cents"`
	RewardsEnabled        bool   `json:"rewards_enabled"`
}

func (h *FamilyHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "display_name is required"})
		return
	}
	if req.MonthlyAllowanceCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "monthly_allowance_cents must not be negative"})
		return
	}

	if ok := h.requireFamily(w, familyID); !ok {
		return
	}

	child, err := h.familyStore.CreateChild(familyID, req.DisplayName, req.MonthlyAllowanceCents, req.RewardsEnabled)
	if err != nil {
		log.Printf("failed to create child: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create child"})
		return
	}

	h.broadcast(familyID, websocket.NewMessage("child", "created", child.ID, nil))

	writeJSON(w, http.StatusCreated, child)
}

func (h *FamilyHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	profiles, err := h.familyStore.ListProfilesByFamily(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list profiles"})
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *FamilyHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	children, err := h.familyStore.ListChildrenByFamily(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list children"})
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *FamilyHandler) UpdateChildAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.familyStore.GetChildByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	var req struct {
		MonthlyAllowanceCents int64 `json:"monthly_allowance_cents"`
		RewardsEnabled        bool  `json:"rewards_enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.MonthlyAllowanceCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "monthly_allowance_cents must not be negative"})
		return
	}

	child, err := h.familyStore.UpdateChildAccount(id, req.MonthlyAllowanceCents, req.RewardsEnabled)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update child"})
		return
	}

	h.broadcast(child.FamilyID, websocket.NewMessage("child", "updated", id, nil))

	writeJSON(w, http.StatusOK, child)
}

// requireFamily writes a 404 and reports false when the family does not exist.
func (h *FamilyHandler) requireFamily(w http.ResponseWriter, familyID int64) bool {
	family, err := h.familyStore.GetFamilyByID(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get family"})
		return false
	}
	if family == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "family not found"})
		return false
	}
	return true
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps taskflow errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *taskflow.ValidationError
	var ce *taskflow.ConflictError

	switch {
	case errors.Is(err, taskflow.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Reason})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusConflict, map[string]string{"error": ce.Reason})
	default:
		log.Printf("%s: %v", fallback, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}
