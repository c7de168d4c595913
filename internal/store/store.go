// Package store is the persisted key-value store plugin backing the
// frontend's settings surface.
package store

import (
	"errors"

	"stockadvisors/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("store: key not found")

type Repo struct {
	db *gorm.DB
}

func NewRepo() *Repo {
	return &Repo{db: database.DB}
}

func (r *Repo) Get(key string) (string, error) {
	var entry database.StoreEntry
	err := r.db.Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set creates or updates the entry for key.
func (r *Repo) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&database.StoreEntry{Key: key, Value: value}).Error
}

func (r *Repo) Delete(key string) error {
	return r.db.Where("`key` = ?", key).Delete(&database.StoreEntry{}).Error
}

func (r *Repo) Keys() ([]string, error) {
	var keys []string
	err := r.db.Model(&database.StoreEntry{}).Order("`key`").Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *Repo) All() (map[string]string, error) {
	var entries []database.StoreEntry
	if err := r.db.Find(&entries).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		result[e.Key] = e.Value
	}
	return result, nil
}
