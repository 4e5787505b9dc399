package models

import "time"

// User is a registered board member. The password is stored exactly as
// received and compared verbatim on login.
type User struct {
	ID           int
	Email        string
	Password     string
	Nickname     string
	ProfileImage *string
	CreatedAt    time.Time
}

// Post is a board entry. Views is a pointer so rows written before the
// counter existed round-trip as null until repaired on access.
type Post struct {
	ID        int
	Title     string
	Body      string
	AuthorID  int
	ImageURL  *string
	Views     *int
	CreatedAt time.Time
}

// Comment belongs to a post and a user.
type Comment struct {
	ID        int
	PostID    int
	AuthorID  int
	Content   string
	CreatedAt time.Time
}
