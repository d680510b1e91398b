package entities

import "time"

// Author is created lazily the first time a book by a new author is added.
type Author struct {
	ID   uint   `gorm:"column:author_id;primaryKey" json:"id"`
	Name string `gorm:"column:author;uniqueIndex;size:256;not null" json:"name"`
}

func (Author) TableName() string {
	return "authors"
}

type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"uniqueIndex;size:512;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Views       int        `gorm:"not null;default:0" json:"views"`
	LastViewed  *time.Time `gorm:"column:date" json:"last_viewed,omitempty"` // Day the notes were last opened
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	Author      Author     `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:RESTRICT" json:"author"`
}

func (Book) TableName() string {
	return "books"
}

// LastViewedDate formats the last-viewed day for display, empty if never viewed.
func (b Book) LastViewedDate() string {
	if b.LastViewed == nil {
		return ""
	}
	return b.LastViewed.Format("2006-01-02")
}
