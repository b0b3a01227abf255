package model

import "time"

// Pathway groups delivery route photos for an area/section/building.
type Pathway struct {
	ID           int64     `json:"id"`
	AreaName     string    `json:"area_name"`
	SectionNo    string    `json:"section_no"`
	BuildingName string    `json:"building_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type PathwayImage struct {
	ID        int64  `json:"id"`
	PathwayID int64  `json:"pathway_id"`
	ImageURL  string `json:"image_url"`
	Position  int    `json:"position"`
	Note      string `json:"note"`
}
