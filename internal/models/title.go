package models

import "time"

// Title is a reviewable creative work (book, film, album, ...).
//
// Rating is not a stored column: list/retrieve queries select the average
// review score into it, and it stays nil while the title has no reviews.
type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null;index" json:"name"`
	Year        int       `gorm:"not null;index" json:"year"`
	Description string    `gorm:"size:200" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"-"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	Rating      *float64  `gorm:"->;-:migration" json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Title) TableName() string {
	return "titles"
}
