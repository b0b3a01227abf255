package model

import "time"

// FamilyProfile holds a family's address and delivery path details.
type FamilyProfile struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	ExtraInfo    string     `json:"extra_info"`
	AvatarURL    string     `json:"avatar_url"`
	AreaName     string     `json:"area_name"`
	SectionNo    string     `json:"section_no"`
	BuildingName string     `json:"building_name"`
	FloorNo      string     `json:"floor_no"`
	RoomNo       string     `json:"room_no"`
	CreatedAt    time.Time  `json:"created_at"`
	IsDeleted    bool       `json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
}

// DisplayName is the full name, falling back to the given username.
func (p *FamilyProfile) DisplayName(username string) string {
	if p != nil && p.FullName != "" {
		return p.FullName
	}
	return username
}

// DeliveryPath renders the structured path fields as a single line, e.g.
// "Area: X, Section: Y, Building: Z, Floor: A, Room: B".
func (p *FamilyProfile) DeliveryPath() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, 5)
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+": "+v)
		}
	}
	add("Area", p.AreaName)
	add("Section", p.SectionNo)
	add("Building", p.BuildingName)
	add("Floor", p.FloorNo)
	add("Room", p.RoomNo)
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
