package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bulletin/app/models"
	"bulletin/app/presenter"
	"bulletin/app/services"
	"bulletin/app/storage"

	"github.com/gorilla/mux"
)

// maxUploadBytes caps in-memory multipart parsing for post creation.
const maxUploadBytes = 32 << 20

// PostController handles HTTP requests for posts and their comments
type PostController struct {
	postService *services.PostService
	blobs       storage.BlobStore
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, blobs storage.BlobStore) *PostController {
	return &PostController{
		postService: postService,
		blobs:       blobs,
	}
}

// Index handles the paged post listing
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	cursor := 0
	if s := r.URL.Query().Get("cursor"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			cursor = v
		}
	}

	// No upper bound: the limit is caller-trusted.
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	page, err := pc.postService.List(cursor, limit)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, "list_ok", page)
}

// Show handles the post detail view, incrementing the view counter as
// a side effect
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	detail, err := pc.postService.GetDetail(id)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, "detail_ok", detail)
}

// Create handles post creation from a multipart form: title, body,
// user_id, and an optional image that is stored in the blob store and
// referenced by URL.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	authorID, err := strconv.Atoi(r.FormValue("user_id"))
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	payload := &models.PostCreate{
		AuthorID: authorID,
		Title:    r.FormValue("title"),
		Body:     r.FormValue("body"),
	}

	// The image is stored before the post is validated, matching the
	// upload-then-create flow; a rejected post can leave an orphan
	// object behind.
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		url, putErr := pc.blobs.Put(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if putErr != nil {
			log.Printf("image upload failed: %v", putErr)
			sendJSON(w, http.StatusInternalServerError, "internal_server_error", nil)
			return
		}
		payload.ImageURL = &url
	} else if err != http.ErrMissingFile {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	post, err := pc.postService.Create(r.Context(), payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, "post_created", presenter.MakeCreated(post))
}

// CreateComment handles comment creation on a post
func (pc *PostController) CreateComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	var payload models.CommentCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendJSON(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	comment, err := pc.postService.CreateComment(postID, &payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, "comment_created", map[string]interface{}{
		"id":      comment.ID,
		"post_id": comment.PostID,
	})
}
