package store

import (
	"database/sql"
	"fmt"

	"github.com/easyshopbd/easyshop/internal/model"
)

type PathwayStore struct {
	db *sql.DB
}

func NewPathwayStore(db *sql.DB) *PathwayStore {
	return &PathwayStore{db: db}
}

// GetOrCreate returns the pathway for the area/section/building triple,
// creating it on first upload.
func (s *PathwayStore) GetOrCreate(area, section, building string) (*model.Pathway, error) {
	row := s.db.QueryRow(
		`SELECT id, area_name, section_no, building_name, created_at FROM pathways
		 WHERE area_name = ? AND section_no = ? AND building_name = ?`,
		area, section, building,
	)
	var p model.Pathway
	err := row.Scan(&p.ID, &p.AreaName, &p.SectionNo, &p.BuildingName, &p.CreatedAt)
	if err == nil {
		return &p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get pathway: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO pathways (area_name, section_no, building_name) VALUES (?, ?, ?)`,
		area, section, building,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pathway: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *PathwayStore) GetByID(id int64) (*model.Pathway, error) {
	row := s.db.QueryRow(`SELECT id, area_name, section_no, building_name, created_at FROM pathways WHERE id = ?`, id)
	var p model.Pathway
	err := row.Scan(&p.ID, &p.AreaName, &p.SectionNo, &p.BuildingName, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pathway: %w", err)
	}
	return &p, nil
}

func (s *PathwayStore) List() ([]model.Pathway, error) {
	rows, err := s.db.Query(
		`SELECT id, area_name, section_no, building_name, created_at FROM pathways
		 ORDER BY area_name ASC, section_no ASC, building_name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list pathways: %w", err)
	}
	defer rows.Close()

	var pathways []model.Pathway
	for rows.Next() {
		var p model.Pathway
		if err := rows.Scan(&p.ID, &p.AreaName, &p.SectionNo, &p.BuildingName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pathway: %w", err)
		}
		pathways = append(pathways, p)
	}
	return pathways, rows.Err()
}

func (s *PathwayStore) AddImage(pathwayID int64, imageURL string, position int, note string) (*model.PathwayImage, error) {
	result, err := s.db.Exec(
		`INSERT INTO pathway_images (pathway_id, image_url, position, note) VALUES (?, ?, ?, ?)`,
		pathwayID, imageURL, position, note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pathway image: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetImage(id)
}

func (s *PathwayStore) GetImage(id int64) (*model.PathwayImage, error) {
	row := s.db.QueryRow(`SELECT id, pathway_id, image_url, position, note FROM pathway_images WHERE id = ?`, id)
	var img model.PathwayImage
	err := row.Scan(&img.ID, &img.PathwayID, &img.ImageURL, &img.Position, &img.Note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pathway image: %w", err)
	}
	return &img, nil
}

func (s *PathwayStore) ListImages(pathwayID int64) ([]model.PathwayImage, error) {
	rows, err := s.db.Query(
		`SELECT id, pathway_id, image_url, position, note FROM pathway_images WHERE pathway_id = ? ORDER BY position ASC, id ASC`,
		pathwayID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pathway images: %w", err)
	}
	defer rows.Close()

	var images []model.PathwayImage
	for rows.Next() {
		var img model.PathwayImage
		if err := rows.Scan(&img.ID, &img.PathwayID, &img.ImageURL, &img.Position, &img.Note); err != nil {
			return nil, fmt.Errorf("scan pathway image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *PathwayStore) ReplaceImage(id int64, imageURL string) (*model.PathwayImage, error) {
	if _, err := s.db.Exec(`UPDATE pathway_images SET image_url = ? WHERE id = ?`, imageURL, id); err != nil {
		return nil, fmt.Errorf("replace pathway image: %w", err)
	}
	return s.GetImage(id)
}

func (s *PathwayStore) SetImageNote(id int64, note string) (*model.PathwayImage, error) {
	if _, err := s.db.Exec(`UPDATE pathway_images SET note = ? WHERE id = ?`, note, id); err != nil {
		return nil, fmt.Errorf("set pathway image note: %w", err)
	}
	return s.GetImage(id)
}

func (s *PathwayStore) DeleteImage(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM pathway_images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete pathway image: %w", err)
	}
	return nil
}
