package model

import "time"

// Geolocation holds the last reported position of a user. The user id
// being the primary key is what guarantees at most one row per user
type Geolocation struct {
	UserID    uint    `gorm:"primaryKey" json:"-"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Height    float64 `gorm:"not null" json:"height"`
	UpdatedAt time.Time `json:"-"`
}
