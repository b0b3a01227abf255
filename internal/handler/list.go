package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/easyshopbd/easyshop/internal/auth"
	"github.com/easyshopbd/easyshop/internal/store"
)

// ListHandler serves the family-facing market list endpoints.
type ListHandler struct {
	lists  *store.MarketListStore
	logger *slog.Logger
}

func NewListHandler(lists *store.MarketListStore, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

type listContentRequest struct {
	Content string `json:"content"`
}

// Submit creates a new market list for the signed-in family member.
func (h *ListHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req listContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "list content is required")
		return
	}

	ml, err := h.lists.Create(actor.UserID, req.Content)
	if err != nil {
		h.logger.Error("create list", "error", err, "owner", actor.UserID)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ml)
}

// Mine returns the actor's own lists, newest first.
func (h *ListHandler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	lists, err := h.lists.ListByOwner(actor.UserID)
	if err != nil {
		h.logger.Error("list by owner", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// Get returns a single list. Families may only see their own.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	ml, err := h.lists.GetByID(id)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if ml == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if ml.OwnerID != actor.UserID && !actor.IsStaff {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

// Update replaces the content of a still-mutable list.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req listContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "list content is required")
		return
	}

	ml, err := h.lists.Update(id, actor.UserID, actor.IsStaff, req.Content)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

// Delete removes a still-mutable list.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if err := h.lists.Delete(id, actor.UserID, actor.IsStaff); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
