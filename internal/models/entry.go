package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/durok/internal/parser"
)

// Entry represents one logged duration
type Entry struct {
	ID uint `gorm:"primarykey" json:"id"`
	// CreatedAt is the date the entry is attributed to. It defaults to the
	// creation time and can be edited.
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Free-text duration (e.g. "2h 30m"), empty means zero
	Text string `json:"text"`

	// Separate fields used by the structured input mode, digits only
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
}

// Input returns the duration input held by the entry
func (e Entry) Input() parser.Input {
	return parser.Input{Text: e.Text, Hours: e.Hours, Minutes: e.Minutes}
}

// SetInput replaces the entry's duration input, sanitizing the structured fields
func (e *Entry) SetInput(in parser.Input) {
	e.Text = in.Text
	e.Hours = parser.SanitizeDigits(in.Hours)
	e.Minutes = parser.SanitizeDigits(in.Minutes)
}
