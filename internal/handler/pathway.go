package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/easyshopbd/easyshop/internal/blob"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/store"
)

// PathwayHandler serves the staff-managed delivery route photo albums.
type PathwayHandler struct {
	pathways *store.PathwayStore
	uploads  blob.Store
	logger   *slog.Logger
}

func NewPathwayHandler(pathways *store.PathwayStore, uploads blob.Store, logger *slog.Logger) *PathwayHandler {
	return &PathwayHandler{pathways: pathways, uploads: uploads, logger: logger}
}

type pathwayWithImages struct {
	model.Pathway
	Images []model.PathwayImage `json:"images"`
}

// List returns every pathway with its images in position order.
func (h *PathwayHandler) List(w http.ResponseWriter, r *http.Request) {
	pathways, err := h.pathways.List()
	if err != nil {
		h.logger.Error("list pathways", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]pathwayWithImages, 0, len(pathways))
	for _, p := range pathways {
		images, err := h.pathways.ListImages(p.ID)
		if err != nil {
			h.logger.Error("list pathway images", "error", err, "pathway", p.ID)
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		out = append(out, pathwayWithImages{Pathway: p, Images: images})
	}
	writeJSON(w, http.StatusOK, out)
}

// Upload adds a photo to the pathway named by the area/section/building
// form fields, creating the pathway on first use.
func (h *PathwayHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(blob.MaxUploadBytes + 4096); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	area := strings.TrimSpace(r.FormValue("area_name"))
	section := strings.TrimSpace(r.FormValue("section_no"))
	building := strings.TrimSpace(r.FormValue("building_name"))
	if area == "" {
		writeError(w, http.StatusBadRequest, "area_name is required")
		return
	}
	position, _ := strconv.Atoi(r.FormValue("position"))

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExts[ext] {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	url, err := h.uploads.Put(r.Context(), "pathways", ext, file)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "image must be 600KB or smaller")
			return
		}
		h.logger.Error("store pathway image", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	pathway, err := h.pathways.GetOrCreate(area, section, building)
	if err != nil {
		h.logger.Error("get or create pathway", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	image, err := h.pathways.AddImage(pathway.ID, url, position, strings.TrimSpace(r.FormValue("note")))
	if err != nil {
		h.logger.Error("add pathway image", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, image)
}

// ReplaceImage swaps the photo behind an existing entry, keeping its
// position and note.
func (h *PathwayHandler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := r.ParseMultipartForm(blob.MaxUploadBytes + 4096); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExts[ext] {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	url, err := h.uploads.Put(r.Context(), "pathways", ext, file)
	if err != nil {
		if errors.Is(err, blob.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, "image must be 600KB or smaller")
			return
		}
		h.logger.Error("store pathway image", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	image, err := h.pathways.ReplaceImage(id, url)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, image)
}

// SetImageNote updates the caption on a pathway photo.
func (h *PathwayHandler) SetImageNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	image, err := h.pathways.SetImageNote(id, req.Note)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, image)
}

// DeleteImage removes a photo from a pathway.
func (h *PathwayHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	if err := h.pathways.DeleteImage(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
