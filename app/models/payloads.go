package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// PostCreate is the request shape for creating a post. The author id
// carries no validation tag: an absent or zero id falls through to the
// author lookup and answers not-found rather than invalid-request.
type PostCreate struct {
	AuthorID int     `json:"author_id"`
	Title    string  `json:"title" validate:"required,max=26"`
	Body     string  `json:"body" validate:"required"`
	ImageURL *string `json:"image_url"`
}

// CommentCreate is the request shape for commenting on a post.
type CommentCreate struct {
	AuthorID int    `json:"author_id" validate:"required"`
	Content  string `json:"content" validate:"required,max=500"`
}

// UserCreate is the signup request shape.
type UserCreate struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=4,max=50"`
	Nickname     string  `json:"nickname" validate:"required,min=1,max=50"`
	ProfileImage *string `json:"profile_image"`
}

// UserLogin is the login request shape. Email format is not enforced
// here; an address that matches no account answers not-found, even a
// malformed one.
type UserLogin struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is the profile update request shape. Nickname limits are
// checked in the service because the update cap (10) differs from the
// signup cap (50). A nil ProfileImage leaves the stored value untouched.
type UserUpdate struct {
	Nickname     string  `json:"nickname"`
	ProfileImage *string `json:"profile_image"`
}

// PasswordUpdate is the password change request shape.
type PasswordUpdate struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// Validate checks the payload against its field constraints
func (p *PostCreate) Validate() error { return validate.Struct(p) }

// Validate checks the payload against its field constraints
func (c *CommentCreate) Validate() error { return validate.Struct(c) }

// Validate checks the payload against its field constraints
func (u *UserCreate) Validate() error { return validate.Struct(u) }

// Validate checks the payload against its field constraints
func (u *UserLogin) Validate() error { return validate.Struct(u) }

// Validate checks the payload against its field constraints
func (p *PasswordUpdate) Validate() error { return validate.Struct(p) }
