package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/model"
)

const maxUploadSize = 10 << 20 // 10 MiB

var (
	ErrInvalidUpload = errors.New("invalid upload")
	ErrTooLarge      = errors.New("file exceeds upload limit")
)

type AttachmentStore interface {
	Create(ctx context.Context, fileName, objectKey string) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Attachment, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	attachments AttachmentStore
	storage     Storage
	log         *zap.Logger
}

func NewService(attachments AttachmentStore, storage Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{attachments: attachments, storage: storage, log: log}
}

// Upload stores the file body under a generated object key and records it.
// The original file name is kept for download headers only.
func (s *Service) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (model.Attachment, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || body == nil || size <= 0 {
		return model.Attachment{}, ErrInvalidUpload
	}
	if size > maxUploadSize {
		return model.Attachment{}, ErrTooLarge
	}

	key := uuid.NewString() + strings.ToLower(path.Ext(fileName))
	if err := s.storage.Put(ctx, key, body, size, contentType); err != nil {
		return model.Attachment{}, fmt.Errorf("store attachment: %w", err)
	}

	id, err := s.attachments.Create(ctx, fileName, key)
	if err != nil {
		// Best effort cleanup of the orphaned object.
		if rmErr := s.storage.Remove(ctx, key); rmErr != nil {
			s.log.Warn("remove orphaned object", zap.String("key", key), zap.Error(rmErr))
		}
		return model.Attachment{}, fmt.Errorf("record attachment: %w", err)
	}

	return s.attachments.FindByID(ctx, id)
}

// DownloadURL returns a short-lived signed URL for the attachment body.
func (s *Service) DownloadURL(ctx context.Context, id int64) (string, error) {
	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, attachment.ObjectKey, 0)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Attachment, error) {
	return s.attachments.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	attachment, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, attachment.ObjectKey); err != nil {
		return err
	}
	return s.attachments.Delete(ctx, id)
}
