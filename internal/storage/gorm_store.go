package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a persisted key/value pair of the local store.
type Entry struct {
	Key   string `gorm:"primaryKey;type:varchar(255)"`
	Value string `gorm:"type:text"`
}

// GORMStore is a GORM implementation of Store backed by SQLite or PostgreSQL.
type GORMStore struct {
	db   *gorm.DB
	subs subscribers
}

// Open connects to the configured database, migrates the entries table and
// returns a ready store. Supported drivers: "sqlite", "postgres".
func Open(driver, dsn string) (*GORMStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	return &GORMStore{db: db}, nil
}

// NewGORMStore wraps an already opened database connection.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Get retrieves a value by key; the second return reports presence.
func (s *GORMStore) Get(key string) (string, bool) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		return "", false
	}
	return entry.Value, true
}

// Set upserts a key/value pair and notifies subscribers.
func (s *GORMStore) Set(key, value string) error {
	entry := Entry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	s.subs.notify(key)
	return nil
}

// Delete removes a key and notifies subscribers. Deleting an absent key is
// not an error, matching removeItem semantics.
func (s *GORMStore) Delete(key string) error {
	if err := s.db.Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	s.subs.notify(key)
	return nil
}

// Subscribe registers an observer for writes; the returned func removes it.
func (s *GORMStore) Subscribe(fn func(key string)) func() {
	return s.subs.add(fn)
}
