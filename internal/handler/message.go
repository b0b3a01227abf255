package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/easyshopbd/easyshop/internal/auth"
	"github.com/easyshopbd/easyshop/internal/blob"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/store"
)

// MessageHandler serves the one-thread-per-family messaging endpoints.
// Each family has a single conversation with staff; staff see an inbox
// of all conversations.
type MessageHandler struct {
	messages *store.MessageStore
	profiles *store.ProfileStore
	uploads  blob.Store
	logger   *slog.Logger
}

func NewMessageHandler(messages *store.MessageStore, profiles *store.ProfileStore, uploads blob.Store, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, profiles: profiles, uploads: uploads, logger: logger}
}

type inboxEntry struct {
	model.Conversation
	OwnerName string         `json:"owner_name"`
	Unread    int            `json:"unread"`
	Last      *model.Message `json:"last_message"`
}

// Inbox lists every conversation for staff, with unread counts and the
// latest message for preview.
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	convos, err := h.messages.ListConversations()
	if err != nil {
		h.logger.Error("list conversations", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	names, err := h.profiles.DisplayNames()
	if err != nil {
		h.logger.Error("display names", "error", err)
		names = map[int64]string{}
	}

	entries := make([]inboxEntry, 0, len(convos))
	for _, c := range convos {
		entry := inboxEntry{Conversation: c, OwnerName: names[c.UserID]}
		if n, err := h.messages.UnreadFromUser(c.ID, c.UserID); err == nil {
			entry.Unread = n
		}
		if last, err := h.messages.LastMessage(c.ID); err == nil {
			entry.Last = last
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

// conversationFor resolves the thread a request addresses. Families
// always get their own thread; staff address a family via the id param.
func (h *MessageHandler) conversationFor(r *http.Request) (*model.Conversation, error) {
	actor, _ := auth.FromContext(r.Context())

	userID := actor.UserID
	if actor.IsStaff {
		id, err := parseIDParam(r)
		if err != nil {
			return nil, store.ErrValidation
		}
		userID = id
	}
	return h.messages.GetOrCreateConversation(userID)
}

// Thread returns a conversation's messages and marks them read for the
// requesting side.
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	convo, err := h.conversationFor(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := h.messages.MarkRead(convo.ID, actor.UserID); err != nil {
		h.logger.Error("mark read", "error", err)
	}

	msgs, err := h.messages.ListByConversation(convo.ID)
	if err != nil {
		h.logger.Error("list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation": convo,
		"messages":     msgs,
	})
}

// Send posts a message into a thread. The form may carry a body, an
// image, a file, or any combination; an empty message is rejected.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	convo, err := h.conversationFor(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := r.ParseMultipartForm(2 * blob.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	body := strings.TrimSpace(r.FormValue("body"))

	imageURL, err := h.storeAttachment(r, "image", "messages")
	if err != nil {
		h.attachmentError(w, err)
		return
	}
	fileURL, err := h.storeAttachment(r, "file", "messages")
	if err != nil {
		h.attachmentError(w, err)
		return
	}

	if body == "" && imageURL == "" && fileURL == "" {
		writeError(w, http.StatusBadRequest, "message is empty")
		return
	}

	msg, err := h.messages.Send(convo.ID, actor.UserID, body, imageURL, fileURL)
	if err != nil {
		h.logger.Error("send message", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// storeAttachment saves an optional multipart file field, returning ""
// when the field is absent.
func (h *MessageHandler) storeAttachment(r *http.Request, field, prefix string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", store.ErrValidation
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if field == "image" && !imageExts[ext] {
		return "", store.ErrValidation
	}
	return h.uploads.Put(r.Context(), prefix, ext, file)
}

func (h *MessageHandler) attachmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blob.ErrTooLarge):
		writeError(w, http.StatusBadRequest, "attachment must be 600KB or smaller")
	case errors.Is(err, store.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid attachment")
	default:
		h.logger.Error("store attachment", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// UnreadCount returns how many messages await the signed-in user.
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	n, err := h.messages.UnreadCount(actor.UserID)
	if err != nil {
		h.logger.Error("unread count", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": n})
}
