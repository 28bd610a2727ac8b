package model

import "time"

type Attachment struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"file_name"`
	ObjectKey string    `json:"object_key"`
	CreatedAt time.Time `json:"created_at"`
}
