package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.uber.org/multierr"

	"github.com/easyshopbd/easyshop/internal/list"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/store"
)

// FlowHandler serves the staff settings surfaces: delivery flow rules,
// send-status presets and the site-wide notice.
type FlowHandler struct {
	flows   *store.DeliveryFlowStore
	presets *store.PresetStore
	notices *store.NoticeStore
	logger  *slog.Logger
}

func NewFlowHandler(flows *store.DeliveryFlowStore, presets *store.PresetStore, notices *store.NoticeStore, logger *slog.Logger) *FlowHandler {
	return &FlowHandler{flows: flows, presets: presets, notices: notices, logger: logger}
}

// Flows returns the current rule set in evaluation order.
func (h *FlowHandler) Flows(w http.ResponseWriter, r *http.Request) {
	flows, err := h.flows.List()
	if err != nil {
		h.logger.Error("list flows", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, flows)
}

type flowRow struct {
	Label      string `json:"label"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	StatusText string `json:"status_text"`
}

// SaveFlows replaces the whole rule set. The payload must be a JSON
// array; rows with unparseable times are skipped rather than failing the
// save, so a single typo cannot wipe the working rules.
func (h *FlowHandler) SaveFlows(w http.ResponseWriter, r *http.Request) {
	var rows []flowRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "expected a JSON array of rules")
		return
	}

	valid := make([]model.DeliveryFlow, 0, len(rows))
	var skipped error
	for i, row := range rows {
		if _, err := list.ParseTimeOfDay(row.StartTime); err != nil {
			skipped = multierr.Append(skipped, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		if _, err := list.ParseTimeOfDay(row.EndTime); err != nil {
			skipped = multierr.Append(skipped, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		valid = append(valid, model.DeliveryFlow{
			Label:      strings.TrimSpace(row.Label),
			StartTime:  row.StartTime,
			EndTime:    row.EndTime,
			StatusText: strings.TrimSpace(row.StatusText),
		})
	}
	if skipped != nil {
		h.logger.Warn("skipped delivery flow rows", "error", skipped)
	}

	if err := h.flows.ReplaceAll(valid); err != nil {
		h.logger.Error("replace flows", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	flows, err := h.flows.List()
	if err != nil {
		h.logger.Error("list flows", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"flows":   flows,
		"skipped": len(rows) - len(valid),
	})
}

// Presets returns the saved send-status messages.
func (h *FlowHandler) Presets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.presets.List()
	if err != nil {
		h.logger.Error("list presets", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, presets)
}

type presetsRequest struct {
	Texts []string `json:"texts"`
}

// SavePresets replaces the preset messages; blank entries are dropped.
func (h *FlowHandler) SavePresets(w http.ResponseWriter, r *http.Request) {
	var req presetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	n, err := h.presets.ReplaceAll(req.Texts)
	if err != nil {
		h.logger.Error("replace presets", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": n})
}

// Notice returns the site-wide notice shown to families.
func (h *FlowHandler) Notice(w http.ResponseWriter, r *http.Request) {
	notice, err := h.notices.Get()
	if err != nil {
		h.logger.Error("get notice", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

type noticeRequest struct {
	Content string `json:"content"`
}

// SetNotice replaces the site-wide notice.
func (h *FlowHandler) SetNotice(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	notice, err := h.notices.Set(req.Content)
	if err != nil {
		h.logger.Error("set notice", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, notice)
}
