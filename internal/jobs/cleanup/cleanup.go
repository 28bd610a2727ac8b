package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/model"
)

const orphanBatchSize = 100

type attachmentLister interface {
	ListOrphanedBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Attachment, error)
	Delete(ctx context.Context, id int64) error
}

type objectRemover interface {
	Remove(ctx context.Context, key string) error
}

// Job reaps attachments that were uploaded but never attached to a profile
// within the retention window, removing both the object and its record.
type Job struct {
	attachments attachmentLister
	storage     objectRemover
	retention   time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func New(attachments attachmentLister, storage objectRemover, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		attachments: attachments,
		storage:     storage,
		retention:   retention,
		now:         time.Now,
		logger:      logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.attachments == nil || j.storage == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	orphans, err := j.attachments.ListOrphanedBefore(ctx, cutoff, orphanBatchSize)
	if err != nil {
		return fmt.Errorf("list orphaned attachments: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	deleted := 0
	for _, attachment := range orphans {
		if err := j.storage.Remove(ctx, attachment.ObjectKey); err != nil {
			j.logger.Warn("failed to remove orphaned object",
				zap.Error(err),
				zap.String("object_key", attachment.ObjectKey),
			)
			continue
		}
		if err := j.attachments.Delete(ctx, attachment.ID); err != nil {
			return fmt.Errorf("delete orphaned attachment record: %w", err)
		}
		deleted++
	}

	j.logger.Info("cleanup orphaned attachments completed", zap.Int("deleted", deleted))
	return nil
}

// Start runs the job on a fixed interval until the context is cancelled.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("cleanup run failed", zap.Error(err))
			}
		}
	}
}
