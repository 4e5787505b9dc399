package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bulletin/app/models"
	"bulletin/app/moderation"
	"bulletin/app/presenter"
	"bulletin/app/repositories"
)

// moderationThreshold is the fixed toxicity cutoff applied to every
// post creation.
const moderationThreshold = 0.7

// PostService orchestrates listing, detail views, moderation-gated
// creation, and comment creation.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	scorer      moderation.Scorer
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, scorer moderation.Scorer) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		scorer:      scorer,
	}
}

// List returns the total post count and a page of posts in ascending id
// order, each annotated with its comment count. Limit is caller-trusted.
func (s *PostService) List(cursor, limit int) (*presenter.PostPage, error) {
	total, err := s.postRepo.Count()
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(limit, cursor)
	if err != nil {
		return nil, err
	}

	postIDs := make([]int, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}

	// One batched scan instead of a count query per post.
	counts, err := s.commentRepo.CountByPost(postIDs)
	if err != nil {
		return nil, err
	}

	items := make([]presenter.PostListItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, presenter.MakeListItem(post, counts[post.ID]))
	}

	return &presenter.PostPage{
		Total:  total,
		Cursor: cursor,
		Limit:  limit,
		Posts:  items,
	}, nil
}

// GetDetail loads a post, increments its view counter, and returns the
// full detail view with its comments in ascending creation order.
func (s *PostService) GetDetail(postID int) (*presenter.PostDetail, error) {
	post, err := s.postRepo.GetByID(postID)
	if err == repositories.ErrNotFound {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	views, err := s.postRepo.IncrementViews(post.ID)
	if err != nil {
		return nil, err
	}
	post.Views = &views

	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}

	commentsOut := make([]presenter.CommentOut, 0, len(comments))
	for _, comment := range comments {
		out, err := s.mapComment(comment)
		if err != nil {
			// A malformed comment must not take down the whole detail
			// view; skip it and keep going.
			log.Printf("skipping comment %d on post %d: %v", comment.ID, post.ID, err)
			continue
		}
		commentsOut = append(commentsOut, out)
	}

	author := s.resolveAuthor(post.AuthorID)

	detail := presenter.MakeDetail(post, author, commentsOut)
	return &detail, nil
}

// mapComment resolves the comment author and builds the output shape.
func (s *PostService) mapComment(comment *models.Comment) (presenter.CommentOut, error) {
	author, err := s.userRepo.GetByID(comment.AuthorID)
	if err == repositories.ErrNotFound {
		return presenter.MakeComment(comment, presenter.UnknownAuthor), nil
	}
	if err != nil {
		return presenter.CommentOut{}, err
	}
	return presenter.MakeComment(comment, author.Nickname), nil
}

func (s *PostService) resolveAuthor(authorID int) string {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return presenter.UnknownAuthor
	}
	return author.Nickname
}

// Create validates the payload, runs the moderation gate over the
// post's text, and persists the post when it passes.
func (s *PostService) Create(ctx context.Context, payload *models.PostCreate) (*models.Post, error) {
	if err := payload.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if _, err := s.userRepo.GetByID(payload.AuthorID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	text := fmt.Sprintf("%s\n%s", payload.Title, payload.Body)
	verdict, err := s.scorer.Score(ctx, text, moderationThreshold)
	if err != nil {
		return nil, &ModerationUnavailableError{Err: err}
	}
	if verdict.IsToxic {
		return nil, &ModerationBlockedError{Label: verdict.Label, Score: verdict.Score}
	}

	post := &models.Post{
		Title:     strings.TrimSpace(payload.Title),
		Body:      strings.TrimSpace(payload.Body),
		AuthorID:  payload.AuthorID,
		CreatedAt: time.Now(),
	}
	if payload.ImageURL != nil {
		trimmed := strings.TrimSpace(*payload.ImageURL)
		post.ImageURL = &trimmed
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment validates the payload, checks that both the post and
// the author exist, and persists the comment. Comments are not
// moderated.
func (s *PostService) CreateComment(postID int, payload *models.CommentCreate) (*models.Comment, error) {
	if err := payload.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if _, err := s.userRepo.GetByID(payload.AuthorID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  payload.AuthorID,
		Content:   strings.TrimSpace(payload.Content),
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
