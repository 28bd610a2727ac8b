package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingsubin/soob/internal/domain/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, postID, authorID int64, content string) (int64, error) {
	if postID <= 0 || authorID <= 0 || strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("invalid comment payload")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO comments (
	post_id,
	author_id,
	content,
	created_at,
	updated_at
) VALUES ($1, $2, $3, NOW(), NOW())
RETURNING id
`, postID, authorID, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return id, nil
}

func (r *CommentRepo) FindByID(ctx context.Context, id int64) (model.Comment, error) {
	if id <= 0 {
		return model.Comment{}, fmt.Errorf("invalid comment id")
	}

	var comment model.Comment
	err := r.pool.QueryRow(ctx, `
SELECT
	c.id,
	c.post_id,
	c.author_id,
	COALESCE(a.nickname, ''),
	c.content,
	(SELECT COUNT(*) FROM comment_hearts ch WHERE ch.comment_id = c.id),
	c.created_at,
	c.updated_at
FROM comments c
LEFT JOIN accounts a ON a.id = c.author_id
WHERE c.id = $1
`, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.AuthorNickname,
		&comment.Content,
		&comment.HeartCount,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, ErrCommentNotFound
		}
		return model.Comment{}, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if postID <= 0 {
		return nil, fmt.Errorf("invalid post id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	c.id,
	c.post_id,
	c.author_id,
	COALESCE(a.nickname, ''),
	c.content,
	(SELECT COUNT(*) FROM comment_hearts ch WHERE ch.comment_id = c.id),
	c.created_at,
	c.updated_at
FROM comments c
LEFT JOIN accounts a ON a.id = c.author_id
WHERE c.post_id = $1
ORDER BY c.created_at ASC, c.id ASC
`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, 16)
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.AuthorNickname,
			&comment.Content,
			&comment.HeartCount,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate comments: %w", rows.Err())
	}
	return comments, nil
}

func (r *CommentRepo) Update(ctx context.Context, id int64, content string) error {
	result, err := r.pool.Exec(ctx, `
UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1
`, id, content)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
