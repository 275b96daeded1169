package playlist

import (
	"time"

	"github.com/streamify/streamify/services/content"
)

type Playlist struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Public      bool           `json:"public" gorm:"not null;default:false"`
	Thumbnail   string         `json:"thumbnail" gorm:"size:500"`
	Items       []PlaylistItem `json:"items" gorm:"foreignKey:PlaylistID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Playlist) TableName() string {
	return "playlists"
}

type PlaylistItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	PlaylistID uint            `json:"playlist_id" gorm:"not null;uniqueIndex:idx_playlist_content"`
	ContentID  uint            `json:"content_id" gorm:"not null;uniqueIndex:idx_playlist_content"`
	Content    content.Content `json:"content" gorm:"foreignKey:ContentID"`
	Position   uint            `json:"position" gorm:"not null;default:0"`
	AddedAt    time.Time       `json:"added_at" gorm:"autoCreateTime"`
}

// WatchlistEntry is a bookmarked item, separate from playlists.
type WatchlistEntry struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_watchlist_user_content"`
	ContentID uint            `json:"content_id" gorm:"not null;uniqueIndex:idx_watchlist_user_content"`
	Content   content.Content `json:"content" gorm:"foreignKey:ContentID"`
	AddedAt   time.Time       `json:"added_at" gorm:"autoCreateTime"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}
