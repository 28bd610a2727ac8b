package points

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingsubin/soob/internal/domain/enums"
	"github.com/kingsubin/soob/internal/domain/rules"
)

type AccountStore interface {
	AdjustLevelPoint(ctx context.Context, id int64, delta int) (int, enums.Role, error)
	UpdateRole(ctx context.Context, id int64, role enums.Role) error
}

// Service keeps an account's level in step with its point balance. Every
// point-moving action on the board funnels through Award.
type Service struct {
	accounts AccountStore
	log      *zap.Logger
}

func NewService(accounts AccountStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{accounts: accounts, log: log}
}

func (s *Service) Award(ctx context.Context, accountID int64, delta int) error {
	if delta == 0 {
		return nil
	}

	total, role, err := s.accounts.AdjustLevelPoint(ctx, accountID, delta)
	if err != nil {
		return fmt.Errorf("adjust level point: %w", err)
	}

	next := rules.LevelFor(total, role)
	if next == role {
		return nil
	}

	if err := s.accounts.UpdateRole(ctx, accountID, next); err != nil {
		return fmt.Errorf("update level: %w", err)
	}

	s.log.Debug("account level changed",
		zap.Int64("account_id", accountID),
		zap.String("from", string(role)),
		zap.String("to", string(next)),
		zap.Int("points", total),
	)
	return nil
}
