package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/easyshopbd/easyshop/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(scanner interface{ Scan(...any) error }) (*model.FamilyProfile, error) {
	var p model.FamilyProfile
	var isDeleted int
	var deletedAt sql.NullTime

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.ExtraInfo, &p.AvatarURL,
		&p.AreaName, &p.SectionNo, &p.BuildingName, &p.FloorNo, &p.RoomNo,
		&p.CreatedAt, &isDeleted, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.IsDeleted = isDeleted != 0
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Time
	}
	return &p, nil
}

const profileCols = `id, user_id, full_name, phone, address, extra_info, avatar_url, area_name, section_no, building_name, floor_no, room_no, created_at, is_deleted, deleted_at`

func (s *ProfileStore) Create(userID int64, fullName, phone, address string) (*model.FamilyProfile, error) {
	result, err := s.db.Exec(
		`INSERT INTO family_profiles (user_id, full_name, phone, address) VALUES (?, ?, ?, ?)`,
		userID, fullName, phone, address,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ProfileStore) GetByID(id int64) (*model.FamilyProfile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM family_profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetByUserID(userID int64) (*model.FamilyProfile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM family_profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by user: %w", err)
	}
	return p, nil
}

// List returns profiles ordered by full name; deleted controls whether
// the trash folder or the live directory comes back.
func (s *ProfileStore) List(deleted bool) ([]model.FamilyProfile, error) {
	d := 0
	if deleted {
		d = 1
	}
	rows, err := s.db.Query(
		`SELECT `+profileCols+` FROM family_profiles WHERE is_deleted = ? ORDER BY full_name ASC, id ASC`, d,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.FamilyProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (s *ProfileStore) Update(userID int64, fullName, phone, address, extraInfo string) (*model.FamilyProfile, error) {
	_, err := s.db.Exec(
		`UPDATE family_profiles SET full_name = ?, phone = ?, address = ?, extra_info = ? WHERE user_id = ?`,
		fullName, phone, address, extraInfo, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetByUserID(userID)
}

func (s *ProfileStore) SetAvatarURL(userID int64, url string) error {
	if _, err := s.db.Exec(`UPDATE family_profiles SET avatar_url = ? WHERE user_id = ?`, url, userID); err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	return nil
}

func (s *ProfileStore) SetDeliveryPath(userID int64, area, section, building, floor, room string) (*model.FamilyProfile, error) {
	_, err := s.db.Exec(
		`UPDATE family_profiles SET area_name = ?, section_no = ?, building_name = ?, floor_no = ?, room_no = ? WHERE user_id = ?`,
		area, section, building, floor, room, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("set delivery path: %w", err)
	}
	return s.GetByUserID(userID)
}

// SoftDelete moves a profile to the trash folder.
func (s *ProfileStore) SoftDelete(userID int64) error {
	res, err := s.db.Exec(
		`UPDATE family_profiles SET is_deleted = 1, deleted_at = ? WHERE user_id = ? AND is_deleted = 0`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("soft delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProfileStore) Restore(userID int64) error {
	res, err := s.db.Exec(
		`UPDATE family_profiles SET is_deleted = 0, deleted_at = NULL WHERE user_id = ? AND is_deleted = 1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DisplayNames maps every user id to its display name (profile full
// name, falling back to username). Used by the grouped staff views.
func (s *ProfileStore) DisplayNames() (map[int64]string, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.username, COALESCE(p.full_name, '')
		 FROM users u LEFT JOIN family_profiles p ON p.user_id = u.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("display names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var username, fullName string
		if err := rows.Scan(&id, &username, &fullName); err != nil {
			return nil, fmt.Errorf("scan display name: %w", err)
		}
		if fullName != "" {
			names[id] = fullName
		} else {
			names[id] = username
		}
	}
	return names, rows.Err()
}
