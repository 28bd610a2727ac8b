package comments

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
	ErrNotAuthor    = errors.New("not the author of the comment")
	ErrEmptyContent = errors.New("comment content must not be empty")
)

type CommentStore interface {
	Create(ctx context.Context, postID, authorID int64, content string) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	Update(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type PostStore interface {
	FindByID(ctx context.Context, id int64) (model.Post, error)
}

type Ledger interface {
	Award(ctx context.Context, accountID int64, delta int) error
}

type Service struct {
	comments CommentStore
	posts    PostStore
	points   Ledger
	log      *zap.Logger
}

func NewService(comments CommentStore, posts PostStore, points Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{comments: comments, posts: posts, points: points, log: log}
}

func (s *Service) Create(ctx context.Context, postID, authorID int64, content string) (model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return model.Comment{}, ErrEmptyContent
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return model.Comment{}, err
	}

	id, err := s.comments.Create(ctx, postID, authorID, content)
	if err != nil {
		return model.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	if err := s.points.Award(ctx, authorID, rules.CommentPoints); err != nil {
		s.log.Warn("award comment points", zap.Int64("author_id", authorID), zap.Error(err))
	}

	return s.comments.FindByID(ctx, id)
}

func (s *Service) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *Service) Update(ctx context.Context, id, actorID int64, content string) (model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return model.Comment{}, ErrEmptyContent
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return model.Comment{}, err
	}
	if comment.AuthorID != actorID {
		return model.Comment{}, ErrNotAuthor
	}

	if err := s.comments.Update(ctx, id, content); err != nil {
		return model.Comment{}, err
	}
	return s.comments.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return ErrNotAuthor
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	debit := rules.CommentPoints + comment.HeartCount*rules.CommentHeartPoints
	if err := s.points.Award(ctx, comment.AuthorID, -debit); err != nil {
		s.log.Warn("deduct comment points", zap.Int64("author_id", comment.AuthorID), zap.Error(err))
	}
	return nil
}
