package playlist

import (
	"errors"
	"fmt"

	"github.com/streamify/streamify/services/logging"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrAlreadyInList    = errors.New("content is already in this playlist")
)

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) Create(userID uint, name, description string, public bool) (*Playlist, error) {
	p := &Playlist{
		UserID:      userID,
		Name:        name,
		Description: description,
		Public:      public,
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return p, nil
}

// Get returns a playlist with its items in order. Private playlists are
// visible only to their owner.
func (s *Service) Get(id, viewerID uint) (*Playlist, error) {
	var p Playlist
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, added_at")
		}).
		Preload("Items.Content").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to look up playlist: %w", err)
	}

	if !p.Public && p.UserID != viewerID {
		return nil, ErrPlaylistNotFound
	}
	return &p, nil
}

func (s *Service) ForUser(userID uint) ([]Playlist, error) {
	var playlists []Playlist
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// AddContent appends an item at the next free position.
func (s *Service) AddContent(playlistID, ownerID, contentID uint) error {
	var p Playlist
	if err := s.db.Where("id = ? AND user_id = ?", playlistID, ownerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return fmt.Errorf("failed to look up playlist: %w", err)
	}

	var count int64
	err := s.db.Model(&PlaylistItem{}).
		Where("playlist_id = ? AND content_id = ?", playlistID, contentID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check playlist item: %w", err)
	}
	if count > 0 {
		return ErrAlreadyInList
	}

	var maxPosition uint
	row := s.db.Model(&PlaylistItem{}).
		Select("COALESCE(MAX(position), 0)").
		Where("playlist_id = ?", playlistID).
		Row()
	if err := row.Scan(&maxPosition); err != nil {
		return fmt.Errorf("failed to determine position: %w", err)
	}

	item := &PlaylistItem{
		PlaylistID: playlistID,
		ContentID:  contentID,
		Position:   maxPosition + 1,
	}
	return s.db.Create(item).Error
}

func (s *Service) RemoveContent(playlistID, ownerID, contentID uint) error {
	var p Playlist
	if err := s.db.Where("id = ? AND user_id = ?", playlistID, ownerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return fmt.Errorf("failed to look up playlist: %w", err)
	}

	return s.db.Where("playlist_id = ? AND content_id = ?", playlistID, contentID).
		Delete(&PlaylistItem{}).Error
}

func (s *Service) Delete(playlistID, ownerID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", playlistID, ownerID).Delete(&Playlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaylistNotFound
	}
	return s.db.Where("playlist_id = ?", playlistID).Delete(&PlaylistItem{}).Error
}

func (s *Service) AddToWatchlist(userID, contentID uint) error {
	var count int64
	err := s.db.Model(&WatchlistEntry{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check watchlist: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.db.Create(&WatchlistEntry{UserID: userID, ContentID: contentID}).Error
}

func (s *Service) RemoveFromWatchlist(userID, contentID uint) error {
	return s.db.Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&WatchlistEntry{}).Error
}

func (s *Service) Watchlist(userID uint) ([]WatchlistEntry, error) {
	var entries []WatchlistEntry
	err := s.db.Where("user_id = ?", userID).
		Preload("Content").
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	return entries, nil
}
