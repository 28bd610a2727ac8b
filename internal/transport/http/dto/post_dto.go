package dto

import (
	"time"

	"github.com/kingsubin/soob/internal/domain/model"
)

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostResponse struct {
	ID             int64     `json:"id"`
	BoardID        int64     `json:"board_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	HeartCount     int       `json:"heart_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPostResponse(post model.Post) PostResponse {
	return PostResponse{
		ID:             post.ID,
		BoardID:        post.BoardID,
		AuthorID:       post.AuthorID,
		AuthorNickname: post.AuthorNickname,
		Title:          post.Title,
		Content:        post.Content,
		HeartCount:     post.HeartCount,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

func NewPostListResponse(posts []model.Post) PostListResponse {
	out := PostListResponse{Posts: make([]PostResponse, 0, len(posts))}
	for _, post := range posts {
		out.Posts = append(out.Posts, NewPostResponse(post))
	}
	return out
}
