package model

import "time"

type Comment struct {
	ID             int64     `json:"id"`
	PostID         int64     `json:"post_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Content        string    `json:"content"`
	HeartCount     int       `json:"heart_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
