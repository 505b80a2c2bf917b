package model

import "time"

// WatchlistItem is a symbol the scheduled batch analysis covers.
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"type:varchar(12);not null;uniqueIndex"`
	Note      string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
