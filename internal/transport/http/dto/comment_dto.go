package dto

import (
	"time"

	"github.com/kingsubin/soob/internal/domain/model"
)

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"post_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Content        string    `json:"content"`
	HeartCount     int       `json:"heart_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCommentResponse(comment model.Comment) CommentResponse {
	return CommentResponse{
		ID:             comment.ID,
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorNickname: comment.AuthorNickname,
		Content:        comment.Content,
		HeartCount:     comment.HeartCount,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

func NewCommentListResponse(comments []model.Comment) CommentListResponse {
	out := CommentListResponse{Comments: make([]CommentResponse, 0, len(comments))}
	for _, comment := range comments {
		out.Comments = append(out.Comments, NewCommentResponse(comment))
	}
	return out
}

type HeartCountResponse struct {
	HeartCount int `json:"heart_count"`
}
