package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/easyshopbd/easyshop/internal/list"
	"github.com/easyshopbd/easyshop/internal/model"
)

type MarketListStore struct {
	db *sql.DB
}

func NewMarketListStore(db *sql.DB) *MarketListStore {
	return &MarketListStore{db: db}
}

func scanMarketList(scanner interface{ Scan(...any) error }) (*model.MarketList, error) {
	var ml model.MarketList
	var code sql.NullString
	var approvedAt, deliveredAt, declinedAt sql.NullTime

	err := scanner.Scan(
		&ml.ID, &code, &ml.OwnerID, &ml.Content, &ml.OrganizedContent,
		&ml.Status, &ml.Note, &ml.CreatedAt, &approvedAt, &deliveredAt, &declinedAt,
	)
	if err != nil {
		return nil, err
	}

	ml.DisplayCode = code.String
	if approvedAt.Valid {
		ml.ApprovedAt = &approvedAt.Time
	}
	if deliveredAt.Valid {
		ml.DeliveredAt = &deliveredAt.Time
	}
	if declinedAt.Valid {
		ml.DeclinedAt = &declinedAt.Time
	}
	return &ml, nil
}

const marketListCols = `id, display_code, owner_id, content, organized_content, status, note, created_at, approved_at, delivered_at, declined_at`

// Create normalizes and stores a new list for ownerID. The display code
// is derived from the generated row id and stamped inside the same
// transaction, so creation is one logical atomic step. Current policy:
// new lists start approved with approved_at set immediately.
func (s *MarketListStore) Create(ownerID int64, rawContent string) (*model.MarketList, error) {
	content := list.NormalizeText(rawContent)
	organized := list.Organize(content)
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create list: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO market_lists (owner_id, content, organized_content, status, created_at, approved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID, content, organized, string(list.StatusApproved), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(`UPDATE market_lists SET display_code = ? WHERE id = ?`, fmt.Sprintf("Pack-%d", id), id); err != nil {
		return nil, fmt.Errorf("stamp display code: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create list: %w", err)
	}
	return s.GetByID(id)
}

func (s *MarketListStore) GetByID(id int64) (*model.MarketList, error) {
	row := s.db.QueryRow(`SELECT `+marketListCols+` FROM market_lists WHERE id = ?`, id)
	ml, err := scanMarketList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return ml, nil
}

// Update replaces list content for the owning family member. Staff use
// AdminEdit instead. Content is re-normalized and the organized view
// regenerated.
func (s *MarketListStore) Update(id, actorID int64, isStaff bool, rawContent string) (*model.MarketList, error) {
	ml, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ml == nil {
		return nil, ErrNotFound
	}
	if !isStaff && ml.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if !list.Status(ml.Status).Mutable() {
		return nil, ErrNotMutable
	}

	content := list.NormalizeText(rawContent)
	_, err = s.db.Exec(
		`UPDATE market_lists SET content = ?, organized_content = ? WHERE id = ?`,
		content, list.Organize(content), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return s.GetByID(id)
}

// AdminEdit lets staff replace content and note regardless of status.
// Editing content re-derives the organized view; a pure note change
// would go through SetNote and leaves it alone.
func (s *MarketListStore) AdminEdit(id int64, rawContent, note string) (*model.MarketList, error) {
	ml, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ml == nil {
		return nil, ErrNotFound
	}

	content := list.NormalizeText(rawContent)
	_, err = s.db.Exec(
		`UPDATE market_lists SET content = ?, organized_content = ?, note = ? WHERE id = ?`,
		content, list.Organize(content), note, id,
	)
	if err != nil {
		return nil, fmt.Errorf("admin edit list: %w", err)
	}
	return s.GetByID(id)
}

// Delete hard-deletes a list; comments cascade. Owners may delete their
// own lists, staff anyone's.
func (s *MarketListStore) Delete(id, actorID int64, isStaff bool) error {
	ml, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if ml == nil {
		return ErrNotFound
	}
	if !isStaff && ml.OwnerID != actorID {
		return ErrForbidden
	}

	if _, err := s.db.Exec(`DELETE FROM market_lists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func (s *MarketListStore) listQuery(query string, args ...any) ([]model.MarketList, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var lists []model.MarketList
	for rows.Next() {
		ml, err := scanMarketList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *ml)
	}
	return lists, rows.Err()
}

func (s *MarketListStore) ListByOwner(ownerID int64) ([]model.MarketList, error) {
	return s.listQuery(
		`SELECT `+marketListCols+` FROM market_lists WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
}

// ListAll returns every list, optionally filtered to one status.
func (s *MarketListStore) ListAll(status string) ([]model.MarketList, error) {
	if status == "" {
		return s.listQuery(`SELECT ` + marketListCols + ` FROM market_lists ORDER BY created_at DESC, id DESC`)
	}
	return s.listQuery(
		`SELECT `+marketListCols+` FROM market_lists WHERE status = ? ORDER BY created_at DESC, id DESC`,
		status,
	)
}

// ListByDateRange returns lists created in [from, to), oldest first.
func (s *MarketListStore) ListByDateRange(from, to time.Time) ([]model.MarketList, error) {
	return s.listQuery(
		`SELECT `+marketListCols+` FROM market_lists WHERE created_at >= ? AND created_at < ? ORDER BY created_at ASC, id ASC`,
		from.UTC(), to.UTC(),
	)
}

func (s *MarketListStore) CountByStatus() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM market_lists GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// Transition moves a list to target per the lifecycle table. Illegal
// moves return the record unchanged. The update is a single
// compare-and-set keyed on the status we read, so two staff clicking at
// once cannot double-apply timestamps; the loser's update matches zero
// rows and the current record is returned as-is.
func (s *MarketListStore) Transition(id int64, target list.Status) (*model.MarketList, error) {
	ml, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ml == nil {
		return nil, ErrNotFound
	}

	prior := *ml
	now := time.Now().UTC()
	if !list.Apply(ml, target, now) {
		return &prior, nil
	}

	res, err := s.db.Exec(
		`UPDATE market_lists SET status = ?, approved_at = ?, delivered_at = ?, declined_at = ?
		 WHERE id = ? AND status = ?`,
		ml.Status, nullTime(ml.ApprovedAt), nullTime(ml.DeliveredAt), nullTime(ml.DeclinedAt),
		id, prior.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("transition list: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("transition rows affected: %w", err)
	} else if n == 0 {
		// Lost a race with another transition; report what won.
		return s.GetByID(id)
	}
	return ml, nil
}

// Organize regenerates the organized view from stored content, the
// staff-triggered path.
func (s *MarketListStore) Organize(id int64) (*model.MarketList, error) {
	ml, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ml == nil {
		return nil, ErrNotFound
	}

	_, err = s.db.Exec(`UPDATE market_lists SET organized_content = ? WHERE id = ?`, list.Organize(ml.Content), id)
	if err != nil {
		return nil, fmt.Errorf("organize list: %w", err)
	}
	return s.GetByID(id)
}

func (s *MarketListStore) SetNote(id int64, note string) (*model.MarketList, error) {
	ml, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ml == nil {
		return nil, ErrNotFound
	}

	if _, err := s.db.Exec(`UPDATE market_lists SET note = ? WHERE id = ?`, note, id); err != nil {
		return nil, fmt.Errorf("set note: %w", err)
	}
	return s.GetByID(id)
}

// SetNoteForActive stamps note onto every pending or approved list in
// one statement, so a failure changes nothing.
func (s *MarketListStore) SetNoteForActive(note string) (int64, error) {
	res, err := s.db.Exec(
		`UPDATE market_lists SET note = ? WHERE status IN (?, ?)`,
		note, string(list.StatusPending), string(list.StatusApproved),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk set note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk note rows affected: %w", err)
	}
	return n, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
