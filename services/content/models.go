package content

import (
	"time"

	"github.com/streamify/streamify/services/user"
)

type Type string

const (
	TypeMusic   Type = "music"
	TypeVideo   Type = "video"
	TypePodcast Type = "podcast"
)

type Genre struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Content struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Type         Type      `json:"content_type" gorm:"size:20;not null;index"`
	FilePath     string    `json:"file_path" gorm:"size:500;not null"`
	Thumbnail    string    `json:"thumbnail" gorm:"size:500"`
	Duration     uint      `json:"duration"`
	Genres       []Genre   `json:"genres" gorm:"many2many:content_genres"`
	UploadedByID uint      `json:"uploaded_by" gorm:"not null;index"`
	UploadedBy   user.User `json:"-" gorm:"foreignKey:UploadedByID"`
	ArtistName   string    `json:"artist_name" gorm:"size:255"`
	Album        string    `json:"album" gorm:"size:255"`
	Published    bool      `json:"published" gorm:"not null;default:false;index"`
	Premium      bool      `json:"premium" gorm:"not null;default:false"`
	ViewCount    uint      `json:"view_count" gorm:"not null;default:0"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Content) TableName() string {
	return "content"
}

type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_content"`
	ContentID uint      `json:"content_id" gorm:"not null;uniqueIndex:idx_like_user_content"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      user.User `json:"user" gorm:"foreignKey:UserID"`
	ContentID uint      `json:"content_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Replies   []Comment `json:"replies" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// ContentView is one playback/detail hit, logged for analytics.
type ContentView struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	ContentID uint      `json:"content_id" gorm:"not null;index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	WatchedAt time.Time `json:"watched_at" gorm:"autoCreateTime"`
}

func (ContentView) TableName() string {
	return "content_views"
}
