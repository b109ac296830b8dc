package storage

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("location not found")

type Database struct {
	db *gorm.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&SavedLocation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SaveLocation creates the alias or replaces the query of an existing one.
func (d *Database) SaveLocation(name, query string) error {
	name = normalizeName(name)
	query = strings.TrimSpace(query)
	if name == "" || query == "" {
		return fmt.Errorf("location name and query are required")
	}

	loc := &SavedLocation{Name: name, Query: query}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"query", "updated_at"}),
	}).Create(loc).Error
}

func (d *Database) GetLocation(name string) (*SavedLocation, error) {
	var loc SavedLocation
	result := d.db.Where("name = ?", normalizeName(name)).First(&loc)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &loc, nil
}

func (d *Database) ListLocations() ([]SavedLocation, error) {
	var locs []SavedLocation
	result := d.db.Order("name asc").Find(&locs)
	if result.Error != nil {
		return nil, result.Error
	}
	return locs, nil
}

func (d *Database) DeleteLocation(name string) error {
	result := d.db.Unscoped().Where("name = ?", normalizeName(name)).Delete(&SavedLocation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
