package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/easyshopbd/easyshop/internal/list"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/store"
)

// AdminHandler serves the staff-only list management endpoints.
type AdminHandler struct {
	lists    *store.MarketListStore
	profiles *store.ProfileStore
	flows    *store.DeliveryFlowStore
	loc      *time.Location
	logger   *slog.Logger
}

func NewAdminHandler(lists *store.MarketListStore, profiles *store.ProfileStore, flows *store.DeliveryFlowStore, loc *time.Location, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{lists: lists, profiles: profiles, flows: flows, loc: loc, logger: logger}
}

// annotatedList pairs a list with its owner's display name and the
// delivery-flow tag derived from its submission time.
type annotatedList struct {
	model.MarketList
	OwnerName   string `json:"owner_name"`
	DeliveryTag string `json:"delivery_tag,omitempty"`
}

func (h *AdminHandler) annotate(lists []model.MarketList) []annotatedList {
	names, err := h.profiles.DisplayNames()
	if err != nil {
		h.logger.Error("display names", "error", err)
		names = map[int64]string{}
	}
	rules, err := h.flows.List()
	if err != nil {
		h.logger.Error("delivery flows", "error", err)
	}

	out := make([]annotatedList, 0, len(lists))
	for _, ml := range lists {
		a := annotatedList{MarketList: ml, OwnerName: names[ml.OwnerID]}
		if tag, ok := list.Tag(ml.CreatedAt, h.loc, rules); ok {
			a.DeliveryTag = tag
		}
		out = append(out, a)
	}
	return out
}

// Dashboard returns status counts and lists, optionally filtered by status.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, ok := list.ParseStatus(status); !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	counts, err := h.lists.CountByStatus()
	if err != nil {
		h.logger.Error("count by status", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	lists, err := h.lists.ListAll(status)
	if err != nil {
		h.logger.Error("list all", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"counts": counts,
		"lists":  h.annotate(lists),
	})
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, target list.Status) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	ml, err := h.lists.Transition(id, target)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

// Approve moves a pending list to approved.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, list.StatusApproved)
}

// Decline marks a pending or approved list declined.
func (h *AdminHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, list.StatusDeclined)
}

// Deliver marks an approved list delivered.
func (h *AdminHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, list.StatusDelivered)
}

// Restore returns a delivered or declined list to approved.
func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, list.StatusApproved)
}

// RevertPending sends an approved list back to pending.
func (h *AdminHandler) RevertPending(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, list.StatusPending)
}

type adminEditRequest struct {
	Content string `json:"content"`
	Note    string `json:"note"`
}

// Edit lets staff rewrite any list regardless of its status.
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req adminEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ml, err := h.lists.AdminEdit(id, req.Content, req.Note)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

// Organize re-runs the organizer over a list's raw content.
func (h *AdminHandler) Organize(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	ml, err := h.lists.Organize(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

type noteRequest struct {
	Note string `json:"note"`
}

// SetNote attaches a staff note to one list.
func (h *AdminHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ml, err := h.lists.SetNote(id, req.Note)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ml)
}

// BulkNote stamps the same note on every pending and approved list.
func (h *AdminHandler) BulkNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	n, err := h.lists.SetNoteForActive(req.Note)
	if err != nil {
		h.logger.Error("bulk note", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

// Delete removes any list regardless of status or ownership.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if err := h.lists.Delete(id, 0, true); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
