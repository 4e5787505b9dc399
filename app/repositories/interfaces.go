package repositories

import "bulletin/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByNickname(nickname string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(limit, offset int) ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	Count() (int, error)
	IncrementViews(id int) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	CountByPost(postIDs []int) (map[int]int, error)
	DeleteByPost(postID int) error
	DeleteByAuthor(authorID int) error
	Delete(id int) error
}
