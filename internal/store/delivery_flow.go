package store

import (
	"database/sql"
	"fmt"

	"github.com/easyshopbd/easyshop/internal/model"
)

type DeliveryFlowStore struct {
	db *sql.DB
}

func NewDeliveryFlowStore(db *sql.DB) *DeliveryFlowStore {
	return &DeliveryFlowStore{db: db}
}

// List returns the rule set in evaluation order.
func (s *DeliveryFlowStore) List() ([]model.DeliveryFlow, error) {
	rows, err := s.db.Query(
		`SELECT id, label, start_time, end_time, status_text, sort_order
		 FROM delivery_flows ORDER BY sort_order ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list delivery flows: %w", err)
	}
	defer rows.Close()

	var flows []model.DeliveryFlow
	for rows.Next() {
		var f model.DeliveryFlow
		if err := rows.Scan(&f.ID, &f.Label, &f.StartTime, &f.EndTime, &f.StatusText, &f.SortOrder); err != nil {
			return nil, fmt.Errorf("scan delivery flow: %w", err)
		}
		flows = append(flows, f)
	}
	return flows, rows.Err()
}

// ReplaceAll swaps the whole rule set in one transaction: either the old
// set or the new set is visible afterwards, never a mix and never an
// empty window mid-update. Rows are stored in the order given; callers
// validate times before getting here.
func (s *DeliveryFlowStore) ReplaceAll(flows []model.DeliveryFlow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace flows: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM delivery_flows`); err != nil {
		return fmt.Errorf("clear delivery flows: %w", err)
	}

	for i, f := range flows {
		statusText := f.StatusText
		if statusText == "" {
			statusText = "Approved"
		}
		_, err := tx.Exec(
			`INSERT INTO delivery_flows (label, start_time, end_time, status_text, sort_order) VALUES (?, ?, ?, ?, ?)`,
			f.Label, f.StartTime, f.EndTime, statusText, i,
		)
		if err != nil {
			return fmt.Errorf("insert delivery flow: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace flows: %w", err)
	}
	return nil
}
