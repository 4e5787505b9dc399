package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bulletin/app/models"
	"bulletin/app/presenter"
	"bulletin/app/repositories"
)

// maxNicknameUpdateLen is the nickname cap on profile update. Signup
// allows up to 50; the update path is stricter.
const maxNicknameUpdateLen = 10

// UserService handles signup, login, profile updates, deletion, and
// password changes.
type UserService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Signup validates the payload and creates the user. The password is
// stored exactly as received.
func (s *UserService) Signup(payload *models.UserCreate) (*presenter.UserOut, error) {
	if err := payload.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	_, err := s.userRepo.GetByEmail(payload.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if err != repositories.ErrNotFound {
		return nil, err
	}

	user := &models.User{
		Email:        payload.Email,
		Password:     payload.Password,
		Nickname:     payload.Nickname,
		ProfileImage: payload.ProfileImage,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	out := presenter.MakeUser(user)
	return &out, nil
}

// Login verifies the credentials by exact comparison and returns the
// login view of the user.
func (s *UserService) Login(payload *models.UserLogin) (*presenter.LoginOut, error) {
	if err := payload.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	user, err := s.userRepo.GetByEmail(payload.Email)
	if err == repositories.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.Password != payload.Password {
		return nil, ErrUnauthorized
	}

	out := presenter.MakeLogin(user)
	return &out, nil
}

// UpdateProfile changes the nickname and, when explicitly provided, the
// profile image. A null profile image is a no-op, not a clear.
func (s *UserService) UpdateProfile(userID int, payload *models.UserUpdate) (*presenter.UserOut, error) {
	user, err := s.userRepo.GetByID(userID)
	if err == repositories.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(payload.Nickname)
	if nickname == "" {
		return nil, ErrNicknameRequired
	}
	if utf8.RuneCountInString(nickname) > maxNicknameUpdateLen {
		return nil, ErrNicknameTooLong
	}

	dup, err := s.userRepo.GetByNickname(nickname)
	if err == nil && dup.ID != userID {
		return nil, ErrNicknameDuplicated
	}
	if err != nil && err != repositories.ErrNotFound {
		return nil, err
	}

	user.Nickname = nickname
	if payload.ProfileImage != nil {
		user.ProfileImage = payload.ProfileImage
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	out := presenter.MakeUser(user)
	return &out, nil
}

// Delete removes the user, every post they own, the comments on those
// posts, and the comments they wrote elsewhere.
func (s *UserService) Delete(userID int) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}

	posts, err := s.postRepo.ListByAuthor(userID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := s.commentRepo.DeleteByPost(post.ID); err != nil {
			return err
		}
		if err := s.postRepo.Delete(post.ID); err != nil {
			return err
		}
	}

	if err := s.commentRepo.DeleteByAuthor(userID); err != nil {
		return err
	}

	return s.userRepo.Delete(userID)
}

// UpdatePassword stores the new password verbatim. A missing user is
// propagated as a generic error, not a structured not-found.
func (s *UserService) UpdatePassword(userID int, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("update password for user %d: %v", userID, err)
	}

	user.Password = newPassword
	return s.userRepo.Update(user)
}
