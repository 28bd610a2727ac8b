package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingsubin/soob/internal/domain/model"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

type AttachmentRepo struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepo(pool *pgxpool.Pool) *AttachmentRepo {
	return &AttachmentRepo{pool: pool}
}

func (r *AttachmentRepo) Create(ctx context.Context, fileName, objectKey string) (int64, error) {
	if strings.TrimSpace(fileName) == "" || strings.TrimSpace(objectKey) == "" {
		return 0, fmt.Errorf("invalid attachment payload")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO attachments (file_name, object_key, created_at)
VALUES ($1, $2, NOW())
RETURNING id
`, fileName, objectKey).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert attachment: %w", err)
	}
	return id, nil
}

func (r *AttachmentRepo) FindByID(ctx context.Context, id int64) (model.Attachment, error) {
	if id <= 0 {
		return model.Attachment{}, fmt.Errorf("invalid attachment id")
	}

	var attachment model.Attachment
	err := r.pool.QueryRow(ctx, `
SELECT id, file_name, object_key, created_at FROM attachments WHERE id = $1
`, id).Scan(
		&attachment.ID,
		&attachment.FileName,
		&attachment.ObjectKey,
		&attachment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Attachment{}, ErrAttachmentNotFound
		}
		return model.Attachment{}, fmt.Errorf("find attachment: %w", err)
	}
	return attachment, nil
}

// ListOrphanedBefore returns attachments created before the cutoff that no
// account references as its profile image.
func (r *AttachmentRepo) ListOrphanedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Attachment, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.file_name, a.object_key, a.created_at
FROM attachments a
WHERE a.created_at < $1
  AND NOT EXISTS (SELECT 1 FROM accounts acc WHERE acc.profile_image_id = a.id)
ORDER BY a.created_at
LIMIT $2
`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list orphaned attachments: %w", err)
	}
	defer rows.Close()

	attachments := make([]model.Attachment, 0, limit)
	for rows.Next() {
		var attachment model.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.FileName,
			&attachment.ObjectKey,
			&attachment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate attachments: %w", rows.Err())
	}
	return attachments, nil
}

func (r *AttachmentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
