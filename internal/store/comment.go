package store

import (
	"database/sql"
	"fmt"

	"github.com/easyshopbd/easyshop/internal/model"
)

type CommentStore struct {
	db *sql.DB
}

func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) Create(listID, authorID int64, body string) (*model.ListComment, error) {
	result, err := s.db.Exec(
		`INSERT INTO list_comments (list_id, author_id, body) VALUES (?, ?, ?)`,
		listID, authorID, body,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT id, list_id, author_id, body, created_at FROM list_comments WHERE id = ?`, id)
	var c model.ListComment
	if err := row.Scan(&c.ID, &c.ListID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (s *CommentStore) ListByList(listID int64) ([]model.ListComment, error) {
	rows, err := s.db.Query(
		`SELECT id, list_id, author_id, body, created_at FROM list_comments WHERE list_id = ? ORDER BY created_at ASC, id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.ListComment
	for rows.Next() {
		var c model.ListComment
		if err := rows.Scan(&c.ID, &c.ListID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
