package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/chorebank/internal/model"
	"github.com/dukerupert/chorebank/internal/store"
	"github.com/dukerupert/chorebank/internal/taskflow"
	"github.com/dukerupert/chorebank/internal/websocket"
)

type TransactionHandler struct {
	txnStore    *store.TransactionStore
	familyStore *store.FamilyStore
	hub         *websocket.Hub
}

func NewTransactionHandler(ts *store.TransactionStore, fs *store.FamilyStore, hub *websocket.Hub) *TransactionHandler {
	return &TransactionHandler{txnStore: ts, familyStore: fs, hub: hub}
}

func (h *TransactionHandler) broadcast(familyID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(familyID, msg)
	}
}

// Statement returns a child's full transaction history, newest first.
func (h *TransactionHandler) Statement(w http.ResponseWriter, r *http.Request) {
	childID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	child, err := h.familyStore.GetChildByID(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	txns, err := h.txnStore.ListByChild(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list transactions"})
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	writeJSON(w, http.StatusOK, txns)
}

// Balance returns a child's current balance, computed by summing the ledger.
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	childID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	child, err := h.familyStore.GetChildByID(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	balance, err := h.txnStore.BalanceFor(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute balance"})
		return
	}

	writeJSON(w, http.StatusOK, model.Balance{
		ChildID:      child.ID,
		ChildName:    child.DisplayName,
		BalanceCents: balance,
	})
}

// FamilyBalances returns the balance of every child in a family.
func (h *TransactionHandler) FamilyBalances(w http.ResponseWriter, r *http.Request) {
	familyID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	balances, err := h.txnStore.FamilyBalances(familyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute balances"})
		return
	}
	if balances == nil {
		balances = []model.Balance{}
	}
	writeJSON(w, http.StatusOK, balances)
}

// Adjust posts a manual adjustment to a child's ledger. The amount is signed;
// a negative amount debits the child.
func (h *TransactionHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	childID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		AmountCents int64  `json:"amount_cents"`
		Memo        string `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.AmountCents == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_cents must not be zero"})
		return
	}

	req.Memo = strings.TrimSpace(req.Memo)
	if req.Memo == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "memo is required"})
		return
	}

	child, err := h.familyStore.GetChildByID(childID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	txn, err := h.txnStore.Append(childID, req.AmountCents, model.KindAdjustment, req.Memo, time.Now().Format(taskflow.DateLayout))
	if err != nil {
		log.Printf("failed to post adjustment: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to post adjustment"})
		return
	}

	h.broadcast(child.FamilyID, websocket.NewMessage("transaction", "created", txn.ID, nil))

	writeJSON(w, http.StatusCreated, txn)
}
