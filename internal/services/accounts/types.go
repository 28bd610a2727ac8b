package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/kingsubin/soob/internal/domain/enums"
	"github.com/kingsubin/soob/internal/domain/model"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidNickname    = errors.New("invalid nickname")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrDuplicateNickname  = errors.New("duplicate nickname")
	ErrPasswordMismatch   = errors.New("password confirmation mismatch")
	ErrPasswordNotMatched = errors.New("password not matched")
	ErrVerificationKey    = errors.New("invalid verification key")
)

// AccountStore is the persistence surface the service needs; the Postgres
// repo satisfies it.
type AccountStore interface {
	Create(ctx context.Context, email, passwordHash, nickname string) (model.Account, error)
	FindByID(ctx context.Context, id int64) (model.Account, error)
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	UpdateNickname(ctx context.Context, id int64, nickname string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdateProfileImage(ctx context.Context, id, attachmentID int64) error
	UpdateRole(ctx context.Context, id int64, role enums.Role) error
	Delete(ctx context.Context, id int64) error
}

// VerificationStore keeps the short-lived email verification keys.
type VerificationStore interface {
	Put(ctx context.Context, key, email string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PasswordHasher is the opaque password collaborator; the service only ever
// asks it to hash and to verify.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}
