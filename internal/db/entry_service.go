package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/durok/internal/models"
)

// ErrEntryNotFound is returned when an entry id does not exist
var ErrEntryNotFound = errors.New("entry not found")

// EntryStore is the session's entry log. IDs come from an AUTOINCREMENT key
// and are never reused, even after removal.
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore creates an entry store on an open connection
func NewEntryStore(conn *gorm.DB) *EntryStore {
	return &EntryStore{db: conn}
}

// Create appends an entry. A zero CreatedAt is set to the current time.
func (s *EntryStore) Create(entry *models.Entry) error {
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by ID
func (s *EntryStore) Get(id uint) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("entry #%d: %w", id, ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry #%d: %w", id, err)
	}
	return &entry, nil
}

// Save updates an existing entry, including its date
func (s *EntryStore) Save(entry *models.Entry) error {
	if err := s.db.Save(entry).Error; err != nil {
		return fmt.Errorf("failed to save entry #%d: %w", entry.ID, err)
	}
	return nil
}

// Delete removes an entry by ID
func (s *EntryStore) Delete(id uint) error {
	result := s.db.Delete(&models.Entry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entry #%d: %w", id, ErrEntryNotFound)
	}
	return nil
}

// List returns all entries in insertion order
func (s *EntryStore) List() ([]models.Entry, error) {
	var entries []models.Entry
	if err := s.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries
func (s *EntryStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Entry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}
