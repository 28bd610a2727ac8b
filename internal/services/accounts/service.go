package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/enums"
	"github.com/kingsubin/soob/internal/domain/model"
	"github.com/kingsubin/soob/internal/infra/mailer"
	"github.com/kingsubin/soob/internal/repo/postgres"
)

type Config struct {
	VerificationLink string
	VerificationTTL  time.Duration
}

type Service struct {
	accounts      AccountStore
	verifications VerificationStore
	hasher        PasswordHasher
	mail          mailer.Mailer
	cfg           Config
	log           *zap.Logger
}

func NewService(accounts AccountStore, verifications VerificationStore, hasher PasswordHasher, mail mailer.Mailer, cfg Config, log *zap.Logger) *Service {
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = 30 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		accounts:      accounts,
		verifications: verifications,
		hasher:        hasher,
		mail:          mail,
		cfg:           cfg,
		log:           log,
	}
}

// Signup validates everything before touching storage: regex checks, the
// confirmation match and both duplicate checks all run ahead of the insert.
func (s *Service) Signup(ctx context.Context, email, nickname, password, confirmPassword string) (model.Account, error) {
	if err := checkEmail(email); err != nil {
		return model.Account{}, err
	}
	if err := checkNickname(nickname); err != nil {
		return model.Account{}, err
	}
	if err := checkPassword(password); err != nil {
		return model.Account{}, err
	}
	if password != confirmPassword {
		return model.Account{}, ErrPasswordMismatch
	}

	if taken, err := s.accounts.ExistsByEmail(ctx, email); err != nil {
		return model.Account{}, fmt.Errorf("check email duplicated: %w", err)
	} else if taken {
		return model.Account{}, ErrDuplicateEmail
	}
	if taken, err := s.accounts.ExistsByNickname(ctx, nickname); err != nil {
		return model.Account{}, fmt.Errorf("check nickname duplicated: %w", err)
	} else if taken {
		return model.Account{}, ErrDuplicateNickname
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, email, hash, nickname)
	if err != nil {
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (model.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrAccountNotFound) {
			return model.Account{}, postgres.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("find account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return model.Account{}, ErrPasswordNotMatched
	}
	return account, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (model.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	return s.accounts.FindByEmail(ctx, email)
}

func (s *Service) CheckEmailDuplicated(ctx context.Context, email string) (bool, error) {
	return s.accounts.ExistsByEmail(ctx, email)
}

func (s *Service) CheckNicknameDuplicated(ctx context.Context, nickname string) (bool, error) {
	return s.accounts.ExistsByNickname(ctx, nickname)
}

func (s *Service) SendSignupVerificationEmail(ctx context.Context, email string) error {
	if _, err := s.accounts.FindByEmail(ctx, email); err != nil {
		return err
	}

	key := uuid.NewString()
	if err := s.verifications.Put(ctx, key, email, s.cfg.VerificationTTL); err != nil {
		return fmt.Errorf("store verification key: %w", err)
	}

	body := "Verify your account: " + s.cfg.VerificationLink + key
	if err := s.mail.Send(ctx, email, "soob signup verification", body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// VerifyEmail promotes a fresh account onto the level ladder and burns the
// key so the link is single-use.
func (s *Service) VerifyEmail(ctx context.Context, key string) error {
	email, err := s.verifications.Get(ctx, key)
	if err != nil {
		return ErrVerificationKey
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if account.Role == enums.RoleNotPermitted {
		if err := s.accounts.UpdateRole(ctx, account.ID, enums.RoleLevel1); err != nil {
			return fmt.Errorf("promote verified account: %w", err)
		}
	}

	if err := s.verifications.Delete(ctx, key); err != nil {
		s.log.Warn("delete verification key", zap.Error(err))
	}
	return nil
}

// SendTempPasswordEmail resets the password to a random value and mails it.
// The account lookup runs before any mutation or delivery attempt.
func (s *Service) SendTempPasswordEmail(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	tempPassword := strings.ReplaceAll(uuid.NewString(), "-", "")[:15]
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return fmt.Errorf("hash temp password: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	body := "Log in and change your password. Temporary password: " + tempPassword
	if err := s.mail.Send(ctx, email, "soob temporary password", body); err != nil {
		return fmt.Errorf("send temp password email: %w", err)
	}
	return nil
}

func (s *Service) UpdateNickname(ctx context.Context, id int64, nickname string) error {
	if err := checkNickname(nickname); err != nil {
		return err
	}

	if taken, err := s.accounts.ExistsByNickname(ctx, nickname); err != nil {
		return fmt.Errorf("check nickname duplicated: %w", err)
	} else if taken {
		return ErrDuplicateNickname
	}

	return s.accounts.UpdateNickname(ctx, id, nickname)
}

func (s *Service) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword, confirmNewPassword string) error {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(currentPassword, account.PasswordHash) {
		return ErrPasswordNotMatched
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	if newPassword != confirmNewPassword {
		return ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, id, hash)
}

func (s *Service) UpdateProfileImage(ctx context.Context, id, attachmentID int64) error {
	return s.accounts.UpdateProfileImage(ctx, id, attachmentID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.accounts.Delete(ctx, id)
}
