package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bulletin/app/models"
	"bulletin/app/moderation"
	"bulletin/app/presenter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostServiceFixture() (*PostService, *mockPostRepo, *mockCommentRepo, *mockUserRepo, *mockScorer) {
	postRepo := newMockPostRepo()
	commentRepo := newMockCommentRepo()
	userRepo := newMockUserRepo()
	scorer := &mockScorer{}
	return NewPostService(postRepo, commentRepo, userRepo, scorer), postRepo, commentRepo, userRepo, scorer
}

func TestPostServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates post with trimmed fields", func(t *testing.T) {
		service, postRepo, _, userRepo, scorer := newPostServiceFixture()
		require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com", Nickname: "alice"}))

		img := "  /uploads/cat.png  "
		post, err := service.Create(ctx, &models.PostCreate{
			AuthorID: 1,
			Title:    "  Hi  ",
			Body:     " World ",
			ImageURL: &img,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, "Hi", post.Title)
		assert.Equal(t, "World", post.Body)
		assert.Equal(t, "/uploads/cat.png", *post.ImageURL)

		stored, err := postRepo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hi", stored.Title)

		// Moderation sees title and body before trimming, joined by a
		// newline.
		assert.Equal(t, 1, scorer.calls)
		assert.Equal(t, "  Hi  \n World ", scorer.lastText)
	})

	t.Run("invalid title", func(t *testing.T) {
		service, _, _, userRepo, _ := newPostServiceFixture()
		require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com"}))

		_, err := service.Create(ctx, &models.PostCreate{
			AuthorID: 1,
			Title:    strings.Repeat("a", 27),
			Body:     "body",
		})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown author", func(t *testing.T) {
		service, _, _, _, _ := newPostServiceFixture()

		_, err := service.Create(ctx, &models.PostCreate{AuthorID: 42, Title: "Hi", Body: "World"})
		assert.Equal(t, ErrUserNotFound, err)
	})

	t.Run("zero author id resolves to missing user", func(t *testing.T) {
		service, _, _, _, _ := newPostServiceFixture()

		_, err := service.Create(ctx, &models.PostCreate{Title: "Hi", Body: "World"})
		assert.Equal(t, ErrUserNotFound, err)
	})

	t.Run("toxic content blocked and never persisted", func(t *testing.T) {
		service, postRepo, _, userRepo, scorer := newPostServiceFixture()
		require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com"}))
		scorer.verdict = &moderation.Verdict{IsToxic: true, Label: "toxic", Score: 0.93}

		_, err := service.Create(ctx, &models.PostCreate{AuthorID: 1, Title: "Hi", Body: "World"})
		var merr *ModerationBlockedError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "toxic", merr.Label)
		assert.Equal(t, 0.93, merr.Score)

		count, err := postRepo.Count()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("classifier failure surfaces as unavailable", func(t *testing.T) {
		service, postRepo, _, userRepo, scorer := newPostServiceFixture()
		require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com"}))
		scorer.err = errors.New("connection refused")

		_, err := service.Create(ctx, &models.PostCreate{AuthorID: 1, Title: "Hi", Body: "World"})
		var uerr *ModerationUnavailableError
		assert.ErrorAs(t, err, &uerr)

		count, err := postRepo.Count()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestPostServiceList(t *testing.T) {
	service, postRepo, commentRepo, userRepo, _ := newPostServiceFixture()
	require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com", Nickname: "alice"}))

	t.Run("empty store", func(t *testing.T) {
		page, err := service.List(0, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
		assert.NotNil(t, page.Posts)
		assert.Empty(t, page.Posts)
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, postRepo.Create(&models.Post{Title: "post", Body: "body", AuthorID: 1}))
	}
	require.NoError(t, commentRepo.Create(&models.Comment{PostID: 2, AuthorID: 1, Content: "c1"}))
	require.NoError(t, commentRepo.Create(&models.Comment{PostID: 2, AuthorID: 1, Content: "c2"}))

	t.Run("page bounded by limit with exact total", func(t *testing.T) {
		page, err := service.List(0, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 0, page.Cursor)
		assert.Equal(t, 3, page.Limit)
		require.Len(t, page.Posts, 3)
		assert.Equal(t, 1, page.Posts[0].ID)
	})

	t.Run("comment counts annotated per item", func(t *testing.T) {
		page, err := service.List(0, 10)
		require.NoError(t, err)
		require.Len(t, page.Posts, 5)
		assert.Equal(t, "0", page.Posts[0].Comments)
		assert.Equal(t, "2", page.Posts[1].Comments)
	})

	t.Run("cursor offsets the page", func(t *testing.T) {
		page, err := service.List(4, 10)
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, 5, page.Posts[0].ID)
		assert.Equal(t, 4, page.Cursor)
	})
}

func TestPostServiceGetDetail(t *testing.T) {
	service, postRepo, commentRepo, userRepo, _ := newPostServiceFixture()
	require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com", Nickname: "alice"}))
	require.NoError(t, postRepo.Create(&models.Post{Title: "Hi", Body: "World", AuthorID: 1}))

	t.Run("missing post", func(t *testing.T) {
		_, err := service.GetDetail(99)
		assert.Equal(t, ErrPostNotFound, err)
	})

	t.Run("two fetches increment views by two", func(t *testing.T) {
		first, err := service.GetDetail(1)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Views)

		second, err := service.GetDetail(1)
		require.NoError(t, err)
		assert.Equal(t, 2, second.Views)
	})

	t.Run("null view counter repaired before increment", func(t *testing.T) {
		post, err := postRepo.GetByID(1)
		require.NoError(t, err)
		post.Views = nil

		detail, err := service.GetDetail(1)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.Views)
	})

	t.Run("comments ordered with resolved authors", func(t *testing.T) {
		base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, commentRepo.Create(&models.Comment{PostID: 1, AuthorID: 1, Content: "later", CreatedAt: base.Add(time.Hour)}))
		require.NoError(t, commentRepo.Create(&models.Comment{PostID: 1, AuthorID: 1, Content: "earlier", CreatedAt: base}))
		// Author 77 does not exist; the comment still renders with the
		// unknown author placeholder.
		require.NoError(t, commentRepo.Create(&models.Comment{PostID: 1, AuthorID: 77, Content: "orphan", CreatedAt: base.Add(2 * time.Hour)}))

		detail, err := service.GetDetail(1)
		require.NoError(t, err)
		require.Len(t, detail.Comments, 3)
		assert.Equal(t, "earlier", detail.Comments[0].Content)
		assert.Equal(t, "alice", detail.Comments[0].Author)
		assert.Equal(t, "later", detail.Comments[1].Content)
		assert.Equal(t, presenter.UnknownAuthor, detail.Comments[2].Author)

		assert.Equal(t, "alice", detail.Author)
		assert.Equal(t, 0, detail.Likes)
		assert.Equal(t, 3, detail.CommentsCount)
	})
}

func TestPostServiceCreateComment(t *testing.T) {
	service, postRepo, _, userRepo, scorer := newPostServiceFixture()
	require.NoError(t, userRepo.Create(&models.User{Email: "a@b.com", Nickname: "alice"}))
	require.NoError(t, postRepo.Create(&models.Post{Title: "Hi", Body: "World", AuthorID: 1}))

	t.Run("creates trimmed comment without moderation", func(t *testing.T) {
		comment, err := service.CreateComment(1, &models.CommentCreate{AuthorID: 1, Content: "  nice post  "})
		require.NoError(t, err)
		assert.Equal(t, "nice post", comment.Content)
		assert.Equal(t, 1, comment.PostID)
		assert.Equal(t, 0, scorer.calls)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := service.CreateComment(99, &models.CommentCreate{AuthorID: 1, Content: "hi"})
		assert.Equal(t, ErrPostNotFound, err)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := service.CreateComment(1, &models.CommentCreate{AuthorID: 99, Content: "hi"})
		assert.Equal(t, ErrUserNotFound, err)
	})

	t.Run("content over cap", func(t *testing.T) {
		_, err := service.CreateComment(1, &models.CommentCreate{AuthorID: 1, Content: strings.Repeat("a", 501)})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
