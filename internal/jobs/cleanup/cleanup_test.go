package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kingsubin/soob/internal/domain/model"
)

type fakeAttachments struct {
	rows []model.Attachment
}

func (f *fakeAttachments) ListOrphanedBefore(_ context.Context, cutoff time.Time, limit int) ([]model.Attachment, error) {
	var out []model.Attachment
	for _, row := range f.rows {
		if row.CreatedAt.Before(cutoff) && len(out) < limit {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAttachments) Delete(_ context.Context, id int64) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeRemover struct {
	removed   []string
	failOnKey string
}

func (f *fakeRemover) Remove(_ context.Context, key string) error {
	if key == f.failOnKey {
		return errors.New("storage unavailable")
	}
	f.removed = append(f.removed, key)
	return nil
}

func TestRunReapsOnlyExpiredOrphans(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	attachments := &fakeAttachments{rows: []model.Attachment{
		{ID: 1, ObjectKey: "old.png", CreatedAt: now.Add(-25 * time.Hour)},
		{ID: 2, ObjectKey: "fresh.png", CreatedAt: now.Add(-23 * time.Hour)},
	}}
	remover := &fakeRemover{}

	job := New(attachments, remover, 24*time.Hour, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	if len(remover.removed) != 1 || remover.removed[0] != "old.png" {
		t.Fatalf("removed = %v, want only old.png", remover.removed)
	}
	if len(attachments.rows) != 1 || attachments.rows[0].ID != 2 {
		t.Fatalf("remaining rows = %v, want the fresh attachment", attachments.rows)
	}
}

func TestRunKeepsRecordWhenObjectRemovalFails(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	attachments := &fakeAttachments{rows: []model.Attachment{
		{ID: 1, ObjectKey: "stuck.png", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	remover := &fakeRemover{failOnKey: "stuck.png"}

	job := New(attachments, remover, 24*time.Hour, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run cleanup job: %v", err)
	}

	// The record survives so a later run can retry the object.
	if len(attachments.rows) != 1 {
		t.Fatalf("record deleted despite storage failure")
	}
}
