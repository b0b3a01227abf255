package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/easyshopbd/easyshop/internal/list"
	"github.com/easyshopbd/easyshop/internal/model"
	"github.com/easyshopbd/easyshop/internal/pdf"
	"github.com/easyshopbd/easyshop/internal/store"
)

// SummaryHandler serves the staff reporting views: per-date summaries,
// consolidated shopping lists and their PDF exports.
type SummaryHandler struct {
	lists    *store.MarketListStore
	profiles *store.ProfileStore
	renderer *pdf.Renderer
	loc      *time.Location
	logger   *slog.Logger
}

func NewSummaryHandler(lists *store.MarketListStore, profiles *store.ProfileStore, renderer *pdf.Renderer, loc *time.Location, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{lists: lists, profiles: profiles, renderer: renderer, loc: loc, logger: logger}
}

// dayRange converts a YYYY-MM-DD query value into the [from, to) UTC
// bounds of that calendar day in the configured timezone. Empty input
// means today.
func (h *SummaryHandler) dayRange(value string) (time.Time, time.Time, string, error) {
	day := time.Now().In(h.loc)
	if value != "" {
		parsed, err := time.ParseInLocation("2006-01-02", value, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, "", fmt.Errorf("parse date %q: %w", value, err)
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC(), start.Format("2006-01-02"), nil
}

func (h *SummaryHandler) profileByUser() map[int64]*model.FamilyProfile {
	profiles, err := h.profiles.List(false)
	if err != nil {
		h.logger.Error("list profiles", "error", err)
		return map[int64]*model.FamilyProfile{}
	}
	out := make(map[int64]*model.FamilyProfile, len(profiles))
	for i := range profiles {
		out[profiles[i].UserID] = &profiles[i]
	}
	return out
}

func (h *SummaryHandler) displayNames() map[int64]string {
	names, err := h.profiles.DisplayNames()
	if err != nil {
		h.logger.Error("display names", "error", err)
		return map[int64]string{}
	}
	return names
}

type summaryRow struct {
	Serial      int    `json:"serial"`
	ListID      int64  `json:"list_id"`
	DisplayCode string `json:"display_code"`
	OwnerName   string `json:"owner_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	Content     string `json:"content"`
	Note        string `json:"note,omitempty"`
}

func (h *SummaryHandler) summaryRows(lists []model.MarketList) []summaryRow {
	names := h.displayNames()
	profiles := h.profileByUser()

	rows := make([]summaryRow, 0, len(lists))
	for i, ml := range lists {
		row := summaryRow{
			Serial:      i + 1,
			ListID:      ml.ID,
			DisplayCode: ml.DisplayCode,
			OwnerName:   names[ml.OwnerID],
			Status:      ml.Status,
			Content:     ml.OrganizedContent,
			Note:        ml.Note,
		}
		if p := profiles[ml.OwnerID]; p != nil {
			row.Address = p.Address
			row.Phone = p.Phone
		}
		rows = append(rows, row)
	}
	return rows
}

// DateSummary lists every list submitted on one calendar day with the
// owner's delivery details.
func (h *SummaryHandler) DateSummary(w http.ResponseWriter, r *http.Request) {
	from, to, day, err := h.dayRange(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	lists, err := h.lists.ListByDateRange(from, to)
	if err != nil {
		h.logger.Error("list by date", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  day,
		"rows":  h.summaryRows(lists),
		"total": len(lists),
	})
}

// DateSummaryPDF is DateSummary as a downloadable document.
func (h *SummaryHandler) DateSummaryPDF(w http.ResponseWriter, r *http.Request) {
	from, to, day, err := h.dayRange(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	lists, err := h.lists.ListByDateRange(from, to)
	if err != nil {
		h.logger.Error("list by date", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	doc := h.renderer.NewDocument()
	doc.Title("Market List Summary - " + day)
	for _, row := range h.summaryRows(lists) {
		doc.Heading(fmt.Sprintf("%d. %s - %s", row.Serial, row.DisplayCode, row.OwnerName))
		if row.Address != "" {
			doc.Body("Address: " + row.Address)
		}
		if row.Phone != "" {
			doc.Body("Phone: " + row.Phone)
		}
		doc.Body(row.Content)
		if row.Note != "" {
			doc.Body("Note: " + row.Note)
		}
		doc.Spacer(4)
	}

	h.servePDF(w, doc, "summary-"+day+".pdf")
}

// Consolidated merges every list from one day into a single renumbered
// shopping list.
func (h *SummaryHandler) Consolidated(w http.ResponseWriter, r *http.Request) {
	from, to, day, err := h.dayRange(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	lists, err := h.lists.ListByDateRange(from, to)
	if err != nil {
		h.logger.Error("list by date", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  day,
		"items": list.MergeLists(lists),
		"lists": len(lists),
	})
}

// ConsolidatedPDF is Consolidated as a downloadable document.
func (h *SummaryHandler) ConsolidatedPDF(w http.ResponseWriter, r *http.Request) {
	from, to, day, err := h.dayRange(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	lists, err := h.lists.ListByDateRange(from, to)
	if err != nil {
		h.logger.Error("list by date", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	doc := h.renderer.NewDocument()
	doc.Title("Consolidated Market List - " + day)
	doc.Body(strings.Join(list.MergeLists(lists), "\n"))
	h.servePDF(w, doc, "consolidated-"+day+".pdf")
}

type entryGroup struct {
	OwnerID   int64              `json:"owner_id"`
	OwnerName string             `json:"owner_name"`
	Lists     []model.MarketList `json:"lists"`
	Merged    []string           `json:"merged"`
}

// EntryUserView shows every list grouped per family, each family's lists
// also merged into one sequence, ordered by family name.
func (h *SummaryHandler) EntryUserView(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, ok := list.ParseStatus(status); !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	lists, err := h.lists.ListAll(status)
	if err != nil {
		h.logger.Error("list all", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	names := h.displayNames()
	groups := list.GroupByOwner(lists, func(ownerID int64) string { return names[ownerID] })

	out := make([]entryGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, entryGroup{
			OwnerID:   g.OwnerID,
			OwnerName: g.OwnerName,
			Lists:     g.Lists,
			Merged:    list.MergeLists(g.Lists),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// EntryConsolidated merges all lists matching the status filter across
// every family and day.
func (h *SummaryHandler) EntryConsolidated(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, ok := list.ParseStatus(status); !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	lists, err := h.lists.ListAll(status)
	if err != nil {
		h.logger.Error("list all", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": list.MergeLists(lists),
		"lists": len(lists),
	})
}

// EntryConsolidatedPDF exports the cross-family merge grouped by date.
func (h *SummaryHandler) EntryConsolidatedPDF(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" {
		if _, ok := list.ParseStatus(status); !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
	}

	lists, err := h.lists.ListAll(status)
	if err != nil {
		h.logger.Error("list all", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	names := h.displayNames()
	doc := h.renderer.NewDocument()
	doc.Title("Market Lists by Date")
	for _, dg := range list.GroupByDate(lists, h.loc, func(ownerID int64) string { return names[ownerID] }) {
		doc.Heading(dg.Date)
		for _, g := range dg.Groups {
			doc.Body(g.OwnerName)
			doc.Body(strings.Join(list.MergeLists(g.Lists), "\n"))
			doc.Spacer(2)
		}
		doc.Spacer(4)
	}
	h.servePDF(w, doc, "market-lists.pdf")
}

func (h *SummaryHandler) servePDF(w http.ResponseWriter, doc *pdf.Document, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := doc.Output(w); err != nil {
		h.logger.Error("write pdf", "error", err)
	}
}
