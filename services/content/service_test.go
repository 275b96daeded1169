package content

import (
	"testing"
	"time"

	"github.com/streamify/streamify/services/user"
	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubChecker answers the premium gate without a subscription service.
type stubChecker struct {
	active bool
}

func (s *stubChecker) HasActiveSubscription(userID uint) (bool, error) {
	return s.active, nil
}

func newTestService(t *testing.T, subscribed bool) (*Service, *gorm.DB) {
	db := testutils.SetupTestDB(t,
		&user.User{}, &Genre{}, &Content{}, &Like{}, &Comment{}, &ContentView{})
	return NewService(db, &stubChecker{active: subscribed}, nil), db
}

func seedCreator(t *testing.T, db *gorm.DB) *user.User {
	u := &user.User{Name: "Creator", Email: "creator@example.com", Password: "x", Role: user.RoleCreator}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedContent(t *testing.T, db *gorm.DB, creator *user.User, title string, published, premium bool) *Content {
	item := &Content{
		Title:        title,
		Type:         TypeMusic,
		FilePath:     "music/" + title + ".mp3",
		UploadedByID: creator.ID,
		Published:    published,
		Premium:      premium,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestService_List(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)

	seedContent(t, db, creator, "one", true, false)
	seedContent(t, db, creator, "two", true, false)
	seedContent(t, db, creator, "draft", false, false)

	items, total, err := s.List(ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	t.Run("genre filter", func(t *testing.T) {
		rock := &Genre{Name: "Rock", Slug: "rock"}
		require.NoError(t, db.Create(rock).Error)
		tagged := seedContent(t, db, creator, "tagged", true, false)
		require.NoError(t, db.Model(tagged).Association("Genres").Append(rock))

		items, total, err := s.List(ListFilter{GenreSlug: "rock"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "tagged", items[0].Title)
	})

	t.Run("type filter", func(t *testing.T) {
		video := seedContent(t, db, creator, "clip", true, false)
		require.NoError(t, db.Model(video).Update("type", TypeVideo).Error)

		_, total, err := s.List(ListFilter{Type: TypeVideo})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestService_Search(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)

	song := seedContent(t, db, creator, "Midnight Drive", true, false)
	require.NoError(t, db.Model(song).Updates(map[string]any{
		"artist_name": "Neon Harbor",
		"album":       "City Lights",
		"view_count":  50,
		"uploaded_at": time.Now().Add(-2 * time.Hour),
	}).Error)

	run := seedContent(t, db, creator, "Morning Run", true, false)
	require.NoError(t, db.Model(run).Updates(map[string]any{
		"description": "an upbeat drive through the hills",
		"view_count":  10,
		"uploaded_at": time.Now().Add(-time.Hour),
	}).Error)

	seedContent(t, db, creator, "Hidden Drive", false, false)

	t.Run("matches the title case-insensitively", func(t *testing.T) {
		items, total, err := s.List(ListFilter{Query: "midnight"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "Midnight Drive", items[0].Title)
	})

	t.Run("matches artist and album", func(t *testing.T) {
		_, total, err := s.List(ListFilter{Query: "neon harbor"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = s.List(ListFilter{Query: "city lights"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("matches the description", func(t *testing.T) {
		items, _, err := s.List(ListFilter{Query: "upbeat"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Morning Run", items[0].Title)
	})

	t.Run("drafts never surface in search results", func(t *testing.T) {
		items, total, err := s.List(ListFilter{Query: "drive"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, item := range items {
			assert.NotEqual(t, "Hidden Drive", item.Title)
		}
	})

	t.Run("popular sort orders by view count", func(t *testing.T) {
		items, _, err := s.List(ListFilter{Sort: SortPopular})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Midnight Drive", items[0].Title)
	})

	t.Run("oldest sort reverses the default", func(t *testing.T) {
		items, _, err := s.List(ListFilter{Sort: SortOldest})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Midnight Drive", items[0].Title)

		items, _, err = s.List(ListFilter{Sort: SortNewest})
		require.NoError(t, err)
		assert.Equal(t, "Morning Run", items[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		_, total, err := s.List(ListFilter{Query: "polka"})
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestService_Get(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	draft := seedContent(t, db, creator, "draft", false, false)

	t.Run("unpublished is hidden from strangers", func(t *testing.T) {
		_, err := s.Get(draft.ID, 0)
		testutils.AssertErrorType(t, ErrContentNotFound, err)

		_, err = s.Get(draft.ID, creator.ID+1)
		testutils.AssertErrorType(t, ErrContentNotFound, err)
	})

	t.Run("owner sees their draft", func(t *testing.T) {
		got, err := s.Get(draft.ID, creator.ID)
		require.NoError(t, err)
		assert.Equal(t, "draft", got.Title)
	})
}

func TestService_CanStream(t *testing.T) {
	t.Run("free content streams for everyone", func(t *testing.T) {
		s, db := newTestService(t, false)
		creator := seedCreator(t, db)
		free := seedContent(t, db, creator, "free", true, false)

		ok, err := s.CanStream(free, 0)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("premium needs a subscription", func(t *testing.T) {
		s, db := newTestService(t, false)
		creator := seedCreator(t, db)
		premium := seedContent(t, db, creator, "premium", true, true)

		ok, err := s.CanStream(premium, 0)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.CanStream(premium, 5)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("subscribers stream premium", func(t *testing.T) {
		s, db := newTestService(t, true)
		creator := seedCreator(t, db)
		premium := seedContent(t, db, creator, "premium", true, true)

		ok, err := s.CanStream(premium, 5)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestService_Create(t *testing.T) {
	s, db := newTestService(t, false)

	t.Run("regular users cannot upload", func(t *testing.T) {
		regular := &user.User{Name: "User", Email: "user@example.com", Password: "x", Role: user.RoleUser}
		require.NoError(t, db.Create(regular).Error)

		err := s.Create(regular, &Content{Title: "nope", Type: TypeMusic, FilePath: "x.mp3"})
		testutils.AssertErrorType(t, ErrNotCreator, err)
	})

	t.Run("creators upload", func(t *testing.T) {
		creator := seedCreator(t, db)

		item := &Content{Title: "song", Type: TypeMusic, FilePath: "song.mp3"}
		require.NoError(t, s.Create(creator, item))
		assert.NotZero(t, item.ID)
		assert.Equal(t, creator.ID, item.UploadedByID)
	})
}

func TestService_RecordView(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	item := seedContent(t, db, creator, "viewed", true, false)

	viewer := creator.ID
	require.NoError(t, s.RecordView(item.ID, &viewer, "203.0.113.1"))
	require.NoError(t, s.RecordView(item.ID, nil, "203.0.113.2"))

	var got Content
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Equal(t, uint(2), got.ViewCount)

	var views int64
	require.NoError(t, db.Model(&ContentView{}).Where("content_id = ?", item.ID).Count(&views).Error)
	assert.Equal(t, int64(2), views)
}

func TestService_ToggleLike(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	item := seedContent(t, db, creator, "liked", true, false)

	liked, count, err := s.ToggleLike(1, item.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = s.ToggleLike(1, item.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}

func TestService_Comments(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	item := seedContent(t, db, creator, "discussed", true, false)

	top, err := s.AddComment(creator.ID, item.ID, "first", nil)
	require.NoError(t, err)

	_, err = s.AddComment(creator.ID, item.ID, "reply", &top.ID)
	require.NoError(t, err)

	comments, err := s.Comments(item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "reply", comments[0].Replies[0].Text)
}

func TestService_Update(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	other := &user.User{Name: "Other", Email: "other@example.com", Password: "x", Role: user.RoleCreator}
	require.NoError(t, db.Create(other).Error)
	admin := &user.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: user.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)

	item := seedContent(t, db, creator, "original", true, false)

	t.Run("strangers cannot edit", func(t *testing.T) {
		edit := *item
		edit.Title = "hijacked"
		err := s.Update(other, &edit)
		testutils.AssertErrorType(t, ErrNotOwner, err)

		var got Content
		require.NoError(t, db.First(&got, item.ID).Error)
		assert.Equal(t, "original", got.Title)
	})

	t.Run("the owner edits", func(t *testing.T) {
		edit := *item
		edit.Title = "revised"
		require.NoError(t, s.Update(creator, &edit))

		var got Content
		require.NoError(t, db.First(&got, item.ID).Error)
		assert.Equal(t, "revised", got.Title)
	})

	t.Run("admins edit anything", func(t *testing.T) {
		edit := *item
		edit.Title = "moderated"
		require.NoError(t, s.Update(admin, &edit))

		var got Content
		require.NoError(t, db.First(&got, item.ID).Error)
		assert.Equal(t, "moderated", got.Title)
	})
}

func TestService_Delete(t *testing.T) {
	s, db := newTestService(t, false)
	creator := seedCreator(t, db)
	other := &user.User{Name: "Other", Email: "other@example.com", Password: "x", Role: user.RoleCreator}
	require.NoError(t, db.Create(other).Error)
	item := seedContent(t, db, creator, "mine", true, false)

	err := s.Delete(other, item.ID)
	testutils.AssertErrorType(t, ErrNotOwner, err)

	require.NoError(t, s.Delete(creator, item.ID))

	_, err = s.Get(item.ID, creator.ID)
	testutils.AssertErrorType(t, ErrContentNotFound, err)
}
