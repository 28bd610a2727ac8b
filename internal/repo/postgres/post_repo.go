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

var ErrPostNotFound = errors.New("post not found")

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, boardID, authorID int64, title, content string) (int64, error) {
	if boardID <= 0 || authorID <= 0 || strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("invalid post payload")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO posts (
	board_id,
	author_id,
	title,
	content,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id
`, boardID, authorID, title, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

func (r *PostRepo) FindByID(ctx context.Context, id int64) (model.Post, error) {
	if id <= 0 {
		return model.Post{}, fmt.Errorf("invalid post id")
	}

	var post model.Post
	err := r.pool.QueryRow(ctx, `
SELECT
	p.id,
	p.board_id,
	p.author_id,
	COALESCE(a.nickname, ''),
	p.title,
	p.content,
	(SELECT COUNT(*) FROM post_hearts ph WHERE ph.post_id = p.id),
	p.created_at,
	p.updated_at
FROM posts p
LEFT JOIN accounts a ON a.id = p.author_id
WHERE p.id = $1
`, id).Scan(
		&post.ID,
		&post.BoardID,
		&post.AuthorID,
		&post.AuthorNickname,
		&post.Title,
		&post.Content,
		&post.HeartCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, ErrPostNotFound
		}
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (r *PostRepo) ListByBoard(ctx context.Context, boardID int64, limit, offset int) ([]model.Post, error) {
	if boardID <= 0 {
		return nil, fmt.Errorf("invalid board id")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	p.id,
	p.board_id,
	p.author_id,
	COALESCE(a.nickname, ''),
	p.title,
	p.content,
	(SELECT COUNT(*) FROM post_hearts ph WHERE ph.post_id = p.id),
	p.created_at,
	p.updated_at
FROM posts p
LEFT JOIN accounts a ON a.id = p.author_id
WHERE p.board_id = $1
ORDER BY p.created_at DESC, p.id DESC
LIMIT $2 OFFSET $3
`, boardID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, limit)
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.BoardID,
			&post.AuthorID,
			&post.AuthorNickname,
			&post.Title,
			&post.Content,
			&post.HeartCount,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate posts: %w", rows.Err())
	}
	return posts, nil
}

func (r *PostRepo) Update(ctx context.Context, id int64, title, content string) error {
	result, err := r.pool.Exec(ctx, `
UPDATE posts SET title = $2, content = $3, updated_at = NOW() WHERE id = $1
`, id, title, content)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}
