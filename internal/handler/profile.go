package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/easyshopbd/easyshop/internal/auth"
	"github.com/easyshopbd/easyshop/internal/blob"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/store"
)

// ProfileHandler serves the family profile endpoints and the staff user
// directory, including soft delete and restore.
type ProfileHandler struct {
	users    *store.UserStore
	profiles *store.ProfileStore
	lists    *store.MarketListStore
	uploads  blob.Store
	logger   *slog.Logger
}

func NewProfileHandler(users *store.UserStore, profiles *store.ProfileStore, lists *store.MarketListStore, uploads blob.Store, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, profiles: profiles, lists: lists, uploads: uploads, logger: logger}
}

// Me returns the signed-in family member's profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	profile, err := h.profiles.GetByUserID(actor.UserID)
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type profileUpdateRequest struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	ExtraInfo string `json:"extra_info"`
}

// UpdateMe updates the signed-in member's own profile details.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())
	h.updateProfile(w, r, actor.UserID)
}

// UpdateUser lets staff edit any family's profile details.
func (h *ProfileHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	h.updateProfile(w, r, userID)
}

func (h *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Address) == "" {
		writeError(w, http.StatusBadRequest, "phone and address are required")
		return
	}

	profile, err := h.profiles.Update(userID, strings.TrimSpace(req.FullName), req.Phone, req.Address, req.ExtraInfo)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// extensions accepted for image uploads
var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

func uploadExt(header *multipart.FileHeader) (string, bool) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	return ext, imageExts[ext]
}

// UploadAvatar stores a new profile photo for the signed-in member.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.FromContext(r.Context())

	if err := r.ParseMultipartForm(blob.MaxUploadBytes + 4096); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	ext, ok := uploadExt(header)
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	url, err := h.uploads.Put(r.Context(), "avatars", ext, file)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "image must be 600KB or smaller")
			return
		}
		h.logger.Error("store avatar", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if err := h.profiles.SetAvatarURL(actor.UserID, url); err != nil {
		h.logger.Error("set avatar url", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

// directoryEntry pairs a profile with its account's username.
type directoryEntry struct {
	model.FamilyProfile
	Username string `json:"username"`
}

// Directory lists family profiles for staff; ?deleted=1 shows the trash.
func (h *ProfileHandler) Directory(w http.ResponseWriter, r *http.Request) {
	deleted := r.URL.Query().Get("deleted") == "1"

	profiles, err := h.profiles.List(deleted)
	if err != nil {
		h.logger.Error("list profiles", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	users, err := h.users.ListFamilies()
	if err != nil {
		h.logger.Error("list families", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	usernames := make(map[int64]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	entries := make([]directoryEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, directoryEntry{FamilyProfile: p, Username: usernames[p.UserID]})
	}
	writeJSON(w, http.StatusOK, entries)
}

// UserDetail returns one family's profile together with its lists.
func (h *ProfileHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.profiles.GetByUserID(userID)
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	lists, err := h.lists.ListByOwner(userID)
	if err != nil {
		h.logger.Error("list by owner", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile":       profile,
		"lists":         lists,
		"delivery_path": profile.DeliveryPath(),
	})
}

// SoftDelete moves a family to the trash; their account and data stay.
func (h *ProfileHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.profiles.SoftDelete(userID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Restore brings a family back from the trash.
func (h *ProfileHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.profiles.Restore(userID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Permanent deletes a family account for good; the schema cascades their
// profile, sessions, lists and messages.
func (h *ProfileHandler) Permanent(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.users.Delete(userID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deliveryPathRequest struct {
	AreaName     string `json:"area_name"`
	SectionNo    string `json:"section_no"`
	BuildingName string `json:"building_name"`
	FloorNo      string `json:"floor_no"`
	RoomNo       string `json:"room_no"`
}

// SetDeliveryPath records the structured delivery path for a family.
func (h *ProfileHandler) SetDeliveryPath(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req deliveryPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	profile, err := h.profiles.SetDeliveryPath(userID, req.AreaName, req.SectionNo, req.BuildingName, req.FloorNo, req.RoomNo)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
