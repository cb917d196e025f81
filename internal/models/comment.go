package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ReviewID  uint      `gorm:"not null;index" json:"review_id"`
	Review    *Review   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"-"`
	Author    *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PubDate   time.Time `gorm:"column:pub_date;autoCreateTime;<-:create;index" json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
