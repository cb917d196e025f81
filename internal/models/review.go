package models

import "time"

// Review scores a title from 1 to 10. The composite unique index enforces
// one review per (title, author) pair at the storage layer, so concurrent
// duplicate submissions fail there even when the request-time pre-check
// races with another insert.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Score     int       `gorm:"not null" json:"score"`
	TitleID   uint      `gorm:"not null;index;uniqueIndex:idx_reviews_title_author" json:"title_id"`
	Title     *Title    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"`
	Author    *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PubDate   time.Time `gorm:"column:pub_date;autoCreateTime;<-:create;index" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
