// Package model defines database models
package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Gender       *string   `json:"gender"`
	School       *string   `json:"school"`
	APIKey       string    `gorm:"uniqueIndex;not null" json:"api_key"`
	CreatedAt    time.Time `json:"created_at"`

	Geolocation *Geolocation `gorm:"foreignKey:UserID" json:"-"`
}
