package storage

import (
	"gorm.io/gorm"
)

// SavedLocation maps a short alias to the query text sent upstream.
type SavedLocation struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Query string `gorm:"not null" json:"query"`
}
