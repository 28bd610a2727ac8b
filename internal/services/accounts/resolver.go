package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingsubin/soob/internal/repo/postgres"
	authsvc "github.com/kingsubin/soob/internal/services/auth"
)

// PrincipalResolver adapts the account store to the identity lookup the
// request interceptor performs. The subject is the verified email; the
// authority set is the account's single board role.
type PrincipalResolver struct {
	accounts AccountStore
}

func NewPrincipalResolver(accounts AccountStore) *PrincipalResolver {
	return &PrincipalResolver{accounts: accounts}
}

func (r *PrincipalResolver) LoadPrincipal(ctx context.Context, subject string) (authsvc.Principal, error) {
	account, err := r.accounts.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, postgres.ErrAccountNotFound) {
			return authsvc.Principal{}, authsvc.ErrPrincipalNotFound
		}
		return authsvc.Principal{}, fmt.Errorf("load principal: %w", err)
	}

	return authsvc.Principal{
		Subject:     account.Email,
		Authorities: []string{string(account.Role)},
	}, nil
}
