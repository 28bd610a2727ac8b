package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HeartRepo stores heart reactions. One heart per account per target; the
// unique constraints make Add idempotent and the bool results tell the
// service whether points actually moved.
type HeartRepo struct {
	pool *pgxpool.Pool
}

func NewHeartRepo(pool *pgxpool.Pool) *HeartRepo {
	return &HeartRepo{pool: pool}
}

func (r *HeartRepo) AddPostHeart(ctx context.Context, accountID, postID int64) (bool, error) {
	if accountID <= 0 || postID <= 0 {
		return false, fmt.Errorf("invalid post heart payload")
	}

	result, err := r.pool.Exec(ctx, `
INSERT INTO post_hearts (account_id, post_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (account_id, post_id) DO NOTHING
`, accountID, postID)
	if err != nil {
		return false, fmt.Errorf("add post heart: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *HeartRepo) RemovePostHeart(ctx context.Context, accountID, postID int64) (bool, error) {
	if accountID <= 0 || postID <= 0 {
		return false, fmt.Errorf("invalid post heart payload")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM post_hearts WHERE account_id = $1 AND post_id = $2
`, accountID, postID)
	if err != nil {
		return false, fmt.Errorf("remove post heart: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *HeartRepo) CountPostHearts(ctx context.Context, postID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM post_hearts WHERE post_id = $1
`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count post hearts: %w", err)
	}
	return count, nil
}

func (r *HeartRepo) AddCommentHeart(ctx context.Context, accountID, commentID int64) (bool, error) {
	if accountID <= 0 || commentID <= 0 {
		return false, fmt.Errorf("invalid comment heart payload")
	}

	result, err := r.pool.Exec(ctx, `
INSERT INTO comment_hearts (account_id, comment_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (account_id, comment_id) DO NOTHING
`, accountID, commentID)
	if err != nil {
		return false, fmt.Errorf("add comment heart: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *HeartRepo) RemoveCommentHeart(ctx context.Context, accountID, commentID int64) (bool, error) {
	if accountID <= 0 || commentID <= 0 {
		return false, fmt.Errorf("invalid comment heart payload")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM comment_hearts WHERE account_id = $1 AND comment_id = $2
`, accountID, commentID)
	if err != nil {
		return false, fmt.Errorf("remove comment heart: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *HeartRepo) CountCommentHearts(ctx context.Context, commentID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM comment_hearts WHERE comment_id = $1
`, commentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comment hearts: %w", err)
	}
	return count, nil
}
