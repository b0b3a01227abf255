package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

// GetOrCreateConversation returns userID's single staff thread, creating
// it on first use.
func (s *MessageStore) GetOrCreateConversation(userID int64) (*model.Conversation, error) {
	row := s.db.QueryRow(`SELECT id, user_id FROM conversations WHERE user_id = ?`, userID)
	var c model.Conversation
	err := row.Scan(&c.ID, &c.UserID)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	result, err := s.db.Exec(`INSERT INTO conversations (user_id) VALUES (?)`, userID)
	if err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &model.Conversation{ID: id, UserID: userID}, nil
}

func (s *MessageStore) ListConversations() ([]model.Conversation, error) {
	rows, err := s.db.Query(`SELECT id, user_id FROM conversations ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.UserID); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func scanMessage(scanner interface{ Scan(...any) error }) (*model.Message, error) {
	var m model.Message
	var readAt sql.NullTime
	err := scanner.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.ImageURL, &m.FileURL, &m.CreatedAt, &readAt)
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		m.ReadAt = &readAt.Time
	}
	return &m, nil
}

const messageCols = `id, conversation_id, sender_id, body, image_url, file_url, created_at, read_at`

func (s *MessageStore) Send(conversationID, senderID int64, body, imageURL, fileURL string) (*model.Message, error) {
	result, err := s.db.Exec(
		`INSERT INTO messages (conversation_id, sender_id, body, image_url, file_url) VALUES (?, ?, ?, ?, ?)`,
		conversationID, senderID, body, imageURL, fileURL,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+messageCols+` FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (s *MessageStore) ListByConversation(conversationID int64) ([]model.Message, error) {
	rows, err := s.db.Query(
		`SELECT `+messageCols+` FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

// MarkRead stamps read_at on every message in the conversation that the
// reader did not send.
func (s *MessageStore) MarkRead(conversationID, readerID int64) error {
	_, err := s.db.Exec(
		`UPDATE messages SET read_at = ? WHERE conversation_id = ? AND sender_id != ? AND read_at IS NULL`,
		time.Now().UTC(), conversationID, readerID,
	)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// UnreadCount counts messages addressed to userID still awaiting a read.
func (s *MessageStore) UnreadCount(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM messages m
		 JOIN conversations c ON c.id = m.conversation_id
		 WHERE c.user_id = ? AND m.sender_id != ? AND m.read_at IS NULL`,
		userID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

// UnreadFromUser counts messages a family member sent that staff have
// not read yet, for the inbox badge.
func (s *MessageStore) UnreadFromUser(conversationID, userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM messages WHERE conversation_id = ? AND sender_id = ? AND read_at IS NULL`,
		conversationID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unread from user: %w", err)
	}
	return count, nil
}

// LastMessage returns the newest message in a conversation, or nil.
func (s *MessageStore) LastMessage(conversationID int64) (*model.Message, error) {
	row := s.db.QueryRow(
		`SELECT `+messageCols+` FROM messages WHERE conversation_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		conversationID,
	)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last message: %w", err)
	}
	return m, nil
}
