package hearts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/model"
	"github.com/kingsubin/soob/internal/domain/rules"
)

// ErrOwnContent rejects hearts on the account's own posts and comments.
var ErrOwnContent = errors.New("cannot heart own content")

type HeartStore interface {
	AddPostHeart(ctx context.Context, accountID, postID int64) (bool, error)
	RemovePostHeart(ctx context.Context, accountID, postID int64) (bool, error)
	CountPostHearts(ctx context.Context, postID int64) (int, error)
	AddCommentHeart(ctx context.Context, accountID, commentID int64) (bool, error)
	RemoveCommentHeart(ctx context.Context, accountID, commentID int64) (bool, error)
	CountCommentHearts(ctx context.Context, commentID int64) (int, error)
}

type PostStore interface {
	FindByID(ctx context.Context, id int64) (model.Post, error)
}

type CommentStore interface {
	FindByID(ctx context.Context, id int64) (model.Comment, error)
}

type Ledger interface {
	Award(ctx context.Context, accountID int64, delta int) error
}

type Service struct {
	hearts   HeartStore
	posts    PostStore
	comments CommentStore
	points   Ledger
	log      *zap.Logger
}

func NewService(hearts HeartStore, posts PostStore, comments CommentStore, points Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{hearts: hearts, posts: posts, comments: comments, points: points, log: log}
}

// HeartPost records a heart and credits the post author. Hearts are
// idempotent, pressing the same heart twice neither duplicates the row nor
// credits the author again. Returns the current heart count.
func (s *Service) HeartPost(ctx context.Context, accountID, postID int64) (int, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post.AuthorID == accountID {
		return 0, ErrOwnContent
	}

	added, err := s.hearts.AddPostHeart(ctx, accountID, postID)
	if err != nil {
		return 0, err
	}
	if added {
		if err := s.points.Award(ctx, post.AuthorID, rules.PostHeartPoints); err != nil {
			s.log.Warn("award post heart points", zap.Int64("author_id", post.AuthorID), zap.Error(err))
		}
	}
	return s.hearts.CountPostHearts(ctx, postID)
}

func (s *Service) UnheartPost(ctx context.Context, accountID, postID int64) (int, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return 0, err
	}

	removed, err := s.hearts.RemovePostHeart(ctx, accountID, postID)
	if err != nil {
		return 0, err
	}
	if removed {
		if err := s.points.Award(ctx, post.AuthorID, -rules.PostHeartPoints); err != nil {
			s.log.Warn("deduct post heart points", zap.Int64("author_id", post.AuthorID), zap.Error(err))
		}
	}
	return s.hearts.CountPostHearts(ctx, postID)
}

func (s *Service) HeartComment(ctx context.Context, accountID, commentID int64) (int, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if comment.AuthorID == accountID {
		return 0, ErrOwnContent
	}

	added, err := s.hearts.AddCommentHeart(ctx, accountID, commentID)
	if err != nil {
		return 0, err
	}
	if added {
		if err := s.points.Award(ctx, comment.AuthorID, rules.CommentHeartPoints); err != nil {
			s.log.Warn("award comment heart points", zap.Int64("author_id", comment.AuthorID), zap.Error(err))
		}
	}
	return s.hearts.CountCommentHearts(ctx, commentID)
}

func (s *Service) UnheartComment(ctx context.Context, accountID, commentID int64) (int, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return 0, err
	}

	removed, err := s.hearts.RemoveCommentHeart(ctx, accountID, commentID)
	if err != nil {
		return 0, err
	}
	if removed {
		if err := s.points.Award(ctx, comment.AuthorID, -rules.CommentHeartPoints); err != nil {
			s.log.Warn("deduct comment heart points", zap.Int64("author_id", comment.AuthorID), zap.Error(err))
		}
	}
	return s.hearts.CountCommentHearts(ctx, commentID)
}
