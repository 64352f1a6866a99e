package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/websocket"
)

type SettingsHandler struct {
	settingsStore *store.SettingsStore
	hub           *websocket.Hub
}

func NewSettingsHandler(ss *store.SettingsStore, hub *websocket.Hub) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss, hub: hub}
}

func (h *SettingsHandler) broadcast(familyID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, msg)
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	settings, err := h.settingsStore.GetByFamily(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
		return
	}
	if settings == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "settings not found"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.settingsStore.GetByFamily(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get settings"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "settings not found"})
		return
	}

	var req struct {
		WeeklyCloseWeekday int  `json:"weekly_close_weekday"`
		PenaltyOnMiss      bool `json:"penalty_on_miss"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.WeeklyCloseWeekday < 0 || req.WeeklyCloseWeekday > 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weekly_close_weekday must be 0-6 (Sunday-Saturday)"})
		return
	}

	settings, err := h.settingsStore.Update(familyID, req.WeeklyCloseWeekday, req.PenaltyOnMiss)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update settings"})
		return
	}

	h.broadcast(familyID, websocket.NewMessage("settings", "updated", familyID, nil))

	writeJSON(w, http.StatusOK, settings)
}
