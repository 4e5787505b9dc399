package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	seedUsers           = 10
	seedPostsPerUser    = 3
	seedCommentsPerPost = 2
)

// seed fills a running server with generated users, posts, and
// comments via the public HTTP API.
func seed() {
	base := os.Getenv("SEED_TARGET")
	if base == "" {
		base = "http://localhost:8080"
	}

	gofakeit.Seed(time.Now().UnixNano())
	client := &http.Client{Timeout: 10 * time.Second}

	log.Printf("Seeding %s with %d users", base, seedUsers)

	var userIDs []int
	for i := 0; i < seedUsers; i++ {
		id, email, password, err := seedUser(client, base)
		if err != nil {
			log.Printf("seed user: %v", err)
			continue
		}
		if err := seedLogin(client, base, email, password); err != nil {
			log.Printf("seed login for user %d: %v", id, err)
		}
		userIDs = append(userIDs, id)
	}
	if len(userIDs) == 0 {
		log.Fatal("Seeding failed: no users created")
	}

	var postIDs []int
	for _, userID := range userIDs {
		for i := 0; i < seedPostsPerUser; i++ {
			id, err := seedPost(client, base, userID)
			if err != nil {
				log.Printf("seed post for user %d: %v", userID, err)
				continue
			}
			postIDs = append(postIDs, id)
		}
	}

	comments := 0
	for _, postID := range postIDs {
		for i := 0; i < seedCommentsPerPost; i++ {
			author := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			if err := seedComment(client, base, postID, author); err != nil {
				log.Printf("seed comment on post %d: %v", postID, err)
				continue
			}
			comments++
		}
	}

	log.Printf("Seeded %d users, %d posts, %d comments", len(userIDs), len(postIDs), comments)
}

func seedUser(client *http.Client, base string) (int, string, string, error) {
	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)
	payload := map[string]string{
		"email":    email,
		"password": password,
		"nickname": gofakeit.Username(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", "", err
	}

	resp, err := client.Post(base+"/users/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, "", "", fmt.Errorf("signup returned status %d", resp.StatusCode)
	}

	var env struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return 0, "", "", err
	}
	return env.Data.ID, email, password, nil
}

func seedLogin(client *http.Client, base, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	resp, err := client.Post(base+"/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned status %d", resp.StatusCode)
	}
	return nil
}

func seedPost(client *http.Client, base string, userID int) (int, error) {
	title := gofakeit.Sentence(3)
	if len(title) > 26 {
		title = title[:26]
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("title", title)
	writer.WriteField("body", gofakeit.Paragraph(1, 3, 8, " "))
	writer.WriteField("user_id", fmt.Sprintf("%d", userID))
	if err := writer.Close(); err != nil {
		return 0, err
	}

	resp, err := client.Post(base+"/posts", writer.FormDataContentType(), &buf)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("post creation returned status %d", resp.StatusCode)
	}

	var env struct {
		Data struct {
			PostID int `json:"post_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return 0, err
	}
	return env.Data.PostID, nil
}

func seedComment(client *http.Client, base string, postID, authorID int) error {
	payload := map[string]interface{}{
		"author_id": authorID,
		"content":   gofakeit.Sentence(8),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/posts/%d/comments", base, postID)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("comment creation returned status %d", resp.StatusCode)
	}
	return nil
}
