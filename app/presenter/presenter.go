// Package presenter maps stored entities to the shapes returned to
// callers. All transforms are pure.
package presenter

import (
	"fmt"
	"strconv"
	"time"

	"bulletin/app/models"
)

const (
	// MaxTitleLen is the display cap; longer titles are hard-truncated,
	// not ellipsized.
	MaxTitleLen = 26

	// DefaultThumbnailURL is shown for posts without an image.
	DefaultThumbnailURL = "/static/default_img.jpg"

	timestampLayout = "2006-01-02 15:04:05"
)

// UnknownAuthor is rendered when an author cannot be resolved.
const UnknownAuthor = "unknown"

// defaultColors is the fixed pair of UI color hints carried on list
// items for frontend compatibility.
func defaultColors() map[string]string {
	return map[string]string{"default": "#ACA0EB", "hover": "#7F6AEE"}
}

// PostListItem is one row of the post listing.
type PostListItem struct {
	ID           int               `json:"id"`
	Title        string            `json:"title"`
	CreatedAt    string            `json:"created_at"`
	Comments     string            `json:"comments"`
	Views        string            `json:"views"`
	DetailURL    string            `json:"detail_url"`
	ThumbnailURL string            `json:"thumbnail_url"`
	Colors       map[string]string `json:"colors"`
}

// PostPage is the paged listing response.
type PostPage struct {
	Total  int            `json:"total"`
	Cursor int            `json:"cursor"`
	Limit  int            `json:"limit"`
	Posts  []PostListItem `json:"posts"`
}

// CommentOut is a comment in the detail view.
type CommentOut struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// PostDetail is the full detail view of a post.
type PostDetail struct {
	ID                   int          `json:"id"`
	Title                string       `json:"title"`
	Body                 string       `json:"body"`
	Author               string       `json:"author"`
	CreatedAt            string       `json:"created_at"`
	Views                int          `json:"views"`
	ViewsDisplay         string       `json:"views_display"`
	CommentsCount        int          `json:"comments_count"`
	CommentsCountDisplay string       `json:"comments_count_display"`
	Likes                int          `json:"likes"`
	ImageURL             *string      `json:"image_url"`
	Comments             []CommentOut `json:"comments"`
}

// PostCreated is returned after a successful post creation.
type PostCreated struct {
	PostID    int    `json:"post_id"`
	ID        int    `json:"id"`
	DetailURL string `json:"detail_url"`
}

// UserOut is the public view of a user.
type UserOut struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	Nickname     string  `json:"nickname"`
	ProfileImage *string `json:"profile_image"`
	CreatedAt    string  `json:"created_at"`
}

// LoginOut is returned after a successful login.
type LoginOut struct {
	UserID       int     `json:"user_id"`
	Email        string  `json:"email"`
	Nickname     string  `json:"nickname"`
	ProfileImage *string `json:"profile_image"`
}

// CompactCount renders a counter the way the frontend shows it:
// below 1000 verbatim, 1000-9999 with one decimal and a K suffix,
// 10000 and up as integer thousands with a K suffix.
func CompactCount(n int) string {
	if n >= 10000 {
		return fmt.Sprintf("%dK", n/1000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return strconv.Itoa(n)
}

// FormatTimestamp renders a timestamp as YYYY-MM-DD HH:MM:SS, or an
// empty string when absent.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

// DetailURL is the canonical detail-page reference for a post.
func DetailURL(postID int) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// MakeListItem builds a listing row from a post and its comment count.
func MakeListItem(post *models.Post, commentCount int) PostListItem {
	title := post.Title
	// Truncate on characters, not bytes; multibyte titles must not be
	// cut mid-rune.
	if r := []rune(title); len(r) > MaxTitleLen {
		title = string(r[:MaxTitleLen])
	}

	thumbnail := DefaultThumbnailURL
	if post.ImageURL != nil && *post.ImageURL != "" {
		thumbnail = *post.ImageURL
	}

	return PostListItem{
		ID:           post.ID,
		Title:        title,
		CreatedAt:    FormatTimestamp(post.CreatedAt),
		Comments:     CompactCount(commentCount),
		Views:        CompactCount(post.ViewCount()),
		DetailURL:    DetailURL(post.ID),
		ThumbnailURL: thumbnail,
		Colors:       defaultColors(),
	}
}

// MakeDetail builds the detail view from a post, its resolved author
// nickname, and its mapped comments. Likes is always zero: the feature
// is not implemented.
func MakeDetail(post *models.Post, author string, comments []CommentOut) PostDetail {
	if author == "" {
		author = UnknownAuthor
	}
	views := post.ViewCount()

	return PostDetail{
		ID:                   post.ID,
		Title:                post.Title,
		Body:                 post.Body,
		Author:               author,
		CreatedAt:            FormatTimestamp(post.CreatedAt),
		Views:                views,
		ViewsDisplay:         CompactCount(views),
		CommentsCount:        len(comments),
		CommentsCountDisplay: CompactCount(len(comments)),
		Likes:                0,
		ImageURL:             post.ImageURL,
		Comments:             comments,
	}
}

// MakeComment builds a detail-view comment with its resolved author
// nickname.
func MakeComment(comment *models.Comment, author string) CommentOut {
	if author == "" {
		author = UnknownAuthor
	}
	return CommentOut{
		ID:        comment.ID,
		Author:    author,
		Content:   comment.Content,
		CreatedAt: FormatTimestamp(comment.CreatedAt),
	}
}

// MakeUser builds the public view of a user.
func MakeUser(user *models.User) UserOut {
	return UserOut{
		ID:           user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImage,
		CreatedAt:    FormatTimestamp(user.CreatedAt),
	}
}

// MakeLogin builds the login response for a user.
func MakeLogin(user *models.User) LoginOut {
	return LoginOut{
		UserID:       user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImage,
	}
}

// MakeCreated builds the creation response for a post.
func MakeCreated(post *models.Post) PostCreated {
	return PostCreated{
		PostID:    post.ID,
		ID:        post.ID,
		DetailURL: DetailURL(post.ID),
	}
}
