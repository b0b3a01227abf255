package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

type NoticeStore struct {
	db *sql.DB
}

func NewNoticeStore(db *sql.DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// Get returns the single notice; an empty one if none was ever saved.
func (s *NoticeStore) Get() (*model.Notice, error) {
	row := s.db.QueryRow(`SELECT content, updated_at FROM notices WHERE id = 1`)
	var n model.Notice
	err := row.Scan(&n.Content, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return &model.Notice{UpdatedAt: time.Now().UTC()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return &n, nil
}

func (s *NoticeStore) Set(content string) (*model.Notice, error) {
	_, err := s.db.Exec(
		`INSERT INTO notices (id, content, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		content, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("set notice: %w", err)
	}
	return s.Get()
}
