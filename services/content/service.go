package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/streamify/streamify/services/logging"
	"github.com/streamify/streamify/services/user"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrNotCreator      = errors.New("a creator account is required to upload content")
	ErrNotOwner        = errors.New("not the owner of this content")
)

// SubscriptionChecker is satisfied by the subscription service; an
// interface here keeps the premium gate testable without pulling plan
// and payment models into this package.
type SubscriptionChecker interface {
	HasActiveSubscription(userID uint) (bool, error)
}

type Service struct {
	db            *gorm.DB
	subscriptions SubscriptionChecker
	logger        *logging.Service
}

func NewService(db *gorm.DB, subscriptions SubscriptionChecker, logger *logging.Service) *Service {
	return &Service{
		db:            db,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// Sort orders accepted by List. The zero value sorts newest first.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

type ListFilter struct {
	Query     string
	Type      Type
	GenreSlug string
	Sort      string
	Page      int
	PerPage   int
}

// List returns a page of published content, optionally filtered by a
// free-text query (matched case-insensitively against title,
// description, artist and album), type and genre. Sorted newest first
// unless the filter asks otherwise.
func (s *Service) List(filter ListFilter) ([]Content, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	query := s.db.Model(&Content{}).Where("published = ?", true)
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(artist_name) LIKE ? OR LOWER(album) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.GenreSlug != "" {
		query = query.
			Joins("JOIN content_genres ON content_genres.content_id = content.id").
			Joins("JOIN genres ON genres.id = content_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count content: %w", err)
	}

	order := "uploaded_at DESC"
	switch filter.Sort {
	case SortPopular:
		order = "view_count DESC"
	case SortOldest:
		order = "uploaded_at ASC"
	}

	var items []Content
	err := query.Preload("Genres").
		Order(order).
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list content: %w", err)
	}

	return items, total, nil
}

// Get fetches a single item. Unpublished content is visible only to
// its uploader.
func (s *Service) Get(id uint, viewerID uint) (*Content, error) {
	var item Content
	query := s.db.Preload("Genres").Where("id = ?", id)
	if viewerID > 0 {
		query = query.Where("published = ? OR uploaded_by_id = ?", true, viewerID)
	} else {
		query = query.Where("published = ?", true)
	}

	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to look up content: %w", err)
	}
	return &item, nil
}

// RecordView logs a playback hit and bumps the denormalized counter.
func (s *Service) RecordView(contentID uint, viewerID *uint, ipAddress string) error {
	view := ContentView{
		UserID:    viewerID,
		ContentID: contentID,
		IPAddress: ipAddress,
	}
	if err := s.db.Create(&view).Error; err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}

	return s.db.Model(&Content{}).
		Where("id = ?", contentID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// CanStream implements the premium gate: free content streams for
// everyone, premium content only for subscribers.
func (s *Service) CanStream(item *Content, viewerID uint) (bool, error) {
	if !item.Premium {
		return true, nil
	}
	if viewerID == 0 {
		return false, nil
	}
	return s.subscriptions.HasActiveSubscription(viewerID)
}

func (s *Service) Create(uploader *user.User, item *Content) error {
	if !uploader.IsCreator() {
		return ErrNotCreator
	}

	item.UploadedByID = uploader.ID
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("content uploaded",
			zap.Uint("content_id", item.ID),
			zap.Uint("user_id", uploader.ID),
			zap.String("type", string(item.Type)))
	}
	return nil
}

func (s *Service) Update(actor *user.User, item *Content) error {
	if item.UploadedByID != actor.ID && !actor.IsAdmin() {
		return ErrNotOwner
	}
	return s.db.Save(item).Error
}

func (s *Service) Delete(actor *user.User, id uint) error {
	var item Content
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to look up content: %w", err)
	}

	if item.UploadedByID != actor.ID && !actor.IsAdmin() {
		return ErrNotOwner
	}

	return s.db.Select("Genres").Delete(&item).Error
}

// ToggleLike flips the viewer's like and returns the new state plus the
// total count.
func (s *Service) ToggleLike(userID, contentID uint) (bool, int64, error) {
	var existing Like
	err := s.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&existing).Error

	liked := false
	switch {
	case err == nil:
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, 0, fmt.Errorf("failed to remove like: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&Like{UserID: userID, ContentID: contentID}).Error; err != nil {
			return false, 0, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	default:
		return false, 0, fmt.Errorf("failed to look up like: %w", err)
	}

	var count int64
	if err := s.db.Model(&Like{}).Where("content_id = ?", contentID).Count(&count).Error; err != nil {
		return liked, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return liked, count, nil
}

func (s *Service) AddComment(userID, contentID uint, text string, parentID *uint) (*Comment, error) {
	comment := &Comment{
		UserID:    userID,
		ContentID: contentID,
		Text:      text,
		ParentID:  parentID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

// Comments returns the top-level thread for an item, newest first, with
// replies preloaded one level deep.
func (s *Service) Comments(contentID uint) ([]Comment, error) {
	var comments []Comment
	err := s.db.Where("content_id = ? AND parent_id IS NULL", contentID).
		Preload("User").
		Preload("Replies").
		Preload("Replies.User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return comments, nil
}

func (s *Service) Genres() ([]Genre, error) {
	var genres []Genre
	if err := s.db.Order("name").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	return genres, nil
}
