package dto

import (
	"time"

	"github.com/kingsubin/soob/internal/domain/model"
)

type AttachmentResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAttachmentResponse(attachment model.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:        attachment.ID,
		FileName:  attachment.FileName,
		CreatedAt: attachment.CreatedAt,
	}
}

type AttachmentURLResponse struct {
	URL string `json:"url"`
}
