package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/easyshopbd/easyshop/internal/auth"
	"github.com/easyshopbd/easyshop/internal/store"
)

// CommentHandler serves per-list comment threads between a family and
// staff.
type CommentHandler struct {
	comments *store.CommentStore
	lists    *store.MarketListStore
	logger   *slog.Logger
}

func NewCommentHandler(comments *store.CommentStore, lists *store.MarketListStore, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, lists: lists, logger: logger}
}

// canAccess reports whether the actor may see a list's comments: staff
// always, families only on their own lists.
func (h *CommentHandler) canAccess(r *http.Request, listID int64) (bool, error) {
	actor, _ := auth.FromContext(r.Context())
	if actor.IsStaff {
		return true, nil
	}
	ml, err := h.lists.GetByID(listID)
	if err != nil {
		return false, err
	}
	return ml != nil && ml.OwnerID == actor.UserID, nil
}

// List returns a list's comments, oldest first.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	ok, err := h.canAccess(r, listID)
	if err != nil {
		h.logger.Error("check list access", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	comments, err := h.comments.ListByList(listID)
	if err != nil {
		h.logger.Error("list comments", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Body string `json:"body"`
}

// Add posts a comment on a list.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	listID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	ok, err := h.canAccess(r, listID)
	if err != nil {
		h.logger.Error("check list access", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !ok {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "comment is empty")
		return
	}

	actor, _ := auth.FromContext(r.Context())
	comment, err := h.comments.Create(listID, actor.UserID, strings.TrimSpace(req.Body))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
