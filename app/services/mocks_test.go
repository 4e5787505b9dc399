package services

import (
	"context"
	"sort"

	"bulletin/app/models"
	"bulletin/app/moderation"
	"bulletin/app/repositories"
)

type mockUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	user.BeforeCreate()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) GetByNickname(nickname string) (*models.User, error) {
	for _, user := range m.users {
		if user.Nickname == nickname {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) Update(user *models.User) error {
	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id int) error {
	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockPostRepo struct {
	posts  map[int]*models.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*models.Post), nextID: 1}
}

func (m *mockPostRepo) Create(post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(id int) (*models.Post, error) {
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *mockPostRepo) sorted() []*models.Post {
	var posts []*models.Post
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func (m *mockPostRepo) List(limit, offset int) ([]*models.Post, error) {
	posts := m.sorted()
	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *mockPostRepo) ListByAuthor(authorID int) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range m.sorted() {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *mockPostRepo) Count() (int, error) {
	return len(m.posts), nil
}

func (m *mockPostRepo) IncrementViews(id int) (int, error) {
	post, exists := m.posts[id]
	if !exists {
		return 0, repositories.ErrNotFound
	}
	views := post.ViewCount() + 1
	post.Views = &views
	return views, nil
}

func (m *mockPostRepo) Update(post *models.Post) error {
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) Delete(id int) error {
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment), nextID: 1}
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	comment.BeforeCreate()
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepo) GetByID(id int) (*models.Comment, error) {
	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *mockCommentRepo) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *mockCommentRepo) CountByPost(postIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(postIDs))
	for _, id := range postIDs {
		counts[id] = 0
	}
	for _, comment := range m.comments {
		if _, ok := counts[comment.PostID]; ok {
			counts[comment.PostID]++
		}
	}
	return counts, nil
}

func (m *mockCommentRepo) DeleteByPost(postID int) error {
	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *mockCommentRepo) DeleteByAuthor(authorID int) error {
	for id, comment := range m.comments {
		if comment.AuthorID == authorID {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *mockCommentRepo) Delete(id int) error {
	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// mockScorer returns a fixed verdict or error and records what it was
// asked to score.
type mockScorer struct {
	verdict  *moderation.Verdict
	err      error
	lastText string
	calls    int
}

func (m *mockScorer) Score(ctx context.Context, text string, threshold float64) (*moderation.Verdict, error) {
	m.calls++
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	if m.verdict != nil {
		return m.verdict, nil
	}
	return &moderation.Verdict{IsToxic: false, Label: "neutral", Score: 0.01}, nil
}
