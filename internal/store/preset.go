package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/easyshopbd/easyshop/internal/model"
)

type PresetStore struct {
	db *sql.DB
}

func NewPresetStore(db *sql.DB) *PresetStore {
	return &PresetStore{db: db}
}

func (s *PresetStore) List() ([]model.SendStatusPreset, error) {
	rows, err := s.db.Query(`SELECT id, text, sort_order FROM send_status_presets ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var presets []model.SendStatusPreset
	for rows.Next() {
		var p model.SendStatusPreset
		if err := rows.Scan(&p.ID, &p.Text, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// ReplaceAll swaps the preset texts transactionally. Blank rows are
// skipped; returns the number kept.
func (s *PresetStore) ReplaceAll(texts []string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin replace presets: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM send_status_presets`); err != nil {
		return 0, fmt.Errorf("clear presets: %w", err)
	}

	kept := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO send_status_presets (text, sort_order) VALUES (?, ?)`, text, kept); err != nil {
			return 0, fmt.Errorf("insert preset: %w", err)
		}
		kept++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace presets: %w", err)
	}
	return kept, nil
}
