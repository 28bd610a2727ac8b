package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/model"
	"github.com/kingsubin/soob/internal/domain/rules"
)

var (
	ErrNotAuthor    = errors.New("not the author of the post")
	ErrEmptyTitle   = errors.New("post title must not be empty")
	ErrEmptyContent = errors.New("post content must not be empty")
)

type PostStore interface {
	Create(ctx context.Context, boardID, authorID int64, title, content string) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Post, error)
	ListByBoard(ctx context.Context, boardID int64, limit, offset int) ([]model.Post, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

type BoardStore interface {
	FindByID(ctx context.Context, id int64) (model.Board, error)
	List(ctx context.Context) ([]model.Board, error)
}

// Ledger credits or debits an author's level points.
type Ledger interface {
	Award(ctx context.Context, accountID int64, delta int) error
}

type Service struct {
	posts  PostStore
	boards BoardStore
	points Ledger
	log    *zap.Logger
}

func NewService(posts PostStore, boards BoardStore, points Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{posts: posts, boards: boards, points: points, log: log}
}

func (s *Service) Boards(ctx context.Context) ([]model.Board, error) {
	return s.boards.List(ctx)
}

func (s *Service) Create(ctx context.Context, boardID, authorID int64, title, content string) (model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Post{}, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return model.Post{}, ErrEmptyContent
	}

	if _, err := s.boards.FindByID(ctx, boardID); err != nil {
		return model.Post{}, err
	}

	id, err := s.posts.Create(ctx, boardID, authorID, title, content)
	if err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}

	if err := s.points.Award(ctx, authorID, rules.PostPoints); err != nil {
		s.log.Warn("award post points", zap.Int64("author_id", authorID), zap.Error(err))
	}

	return s.posts.FindByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *Service) ListByBoard(ctx context.Context, boardID int64, limit, offset int) ([]model.Post, error) {
	if _, err := s.boards.FindByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.posts.ListByBoard(ctx, boardID, limit, offset)
}

func (s *Service) Update(ctx context.Context, id, actorID int64, title, content string) (model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Post{}, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return model.Post{}, ErrEmptyContent
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if post.AuthorID != actorID {
		return model.Post{}, ErrNotAuthor
	}

	if err := s.posts.Update(ctx, id, title, content); err != nil {
		return model.Post{}, err
	}
	return s.posts.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrNotAuthor
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	// Claw back the authoring points plus everything earned through hearts.
	debit := rules.PostPoints + post.HeartCount*rules.PostHeartPoints
	if err := s.points.Award(ctx, post.AuthorID, -debit); err != nil {
		s.log.Warn("deduct post points", zap.Int64("author_id", post.AuthorID), zap.Error(err))
	}
	return nil
}
