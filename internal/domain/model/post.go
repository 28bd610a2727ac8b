package model

import "time"

type Board struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Post struct {
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
