package points

import (
	"context"
	"testing"

	"github.com/kingsubin/soob/internal/domain/enums"
	"github.com/kingsubin/soob/internal/domain/rules"
)

type fakeAccounts struct {
	points map[int64]int
	roles  map[int64]enums.Role

	roleUpdates int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		points: make(map[int64]int),
		roles:  make(map[int64]enums.Role),
	}
}

func (f *fakeAccounts) AdjustLevelPoint(_ context.Context, id int64, delta int) (int, enums.Role, error) {
	f.points[id] += delta
	return f.points[id], f.roles[id], nil
}

func (f *fakeAccounts) UpdateRole(_ context.Context, id int64, role enums.Role) error {
	f.roles[id] = role
	f.roleUpdates++
	return nil
}

func TestAwardPromotesAcrossThreshold(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.points[1] = 245
	accounts.roles[1] = enums.RoleLevel1

	svc := NewService(accounts, nil)
	if err := svc.Award(context.Background(), 1, rules.PostPoints); err != nil {
		t.Fatalf("Award: %v", err)
	}

	if got := accounts.roles[1]; got != enums.RoleLevel2 {
		t.Fatalf("role = %s, want %s", got, enums.RoleLevel2)
	}
	if accounts.points[1] != 255 {
		t.Fatalf("points = %d, want 255", accounts.points[1])
	}
}

func TestAwardBelowThresholdKeepsRole(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.points[1] = 100
	accounts.roles[1] = enums.RoleLevel1

	svc := NewService(accounts, nil)
	if err := svc.Award(context.Background(), 1, rules.CommentPoints); err != nil {
		t.Fatalf("Award: %v", err)
	}

	if accounts.roleUpdates != 0 {
		t.Fatalf("role updates = %d, want 0", accounts.roleUpdates)
	}
}

func TestAwardZeroDeltaIsNoop(t *testing.T) {
	accounts := newFakeAccounts()
	svc := NewService(accounts, nil)

	if err := svc.Award(context.Background(), 1, 0); err != nil {
		t.Fatalf("Award: %v", err)
	}
	if len(accounts.points) != 0 {
		t.Fatalf("expected no point adjustment, got %v", accounts.points)
	}
}

func TestAwardNeverPromotesUnverified(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.points[5] = 900
	accounts.roles[5] = enums.RoleNotPermitted

	svc := NewService(accounts, nil)
	if err := svc.Award(context.Background(), 5, rules.PostPoints); err != nil {
		t.Fatalf("Award: %v", err)
	}

	if got := accounts.roles[5]; got != enums.RoleNotPermitted {
		t.Fatalf("role = %s, want %s", got, enums.RoleNotPermitted)
	}
}

func TestAwardNegativeDeltaDemotes(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.points[2] = 255
	accounts.roles[2] = enums.RoleLevel2

	svc := NewService(accounts, nil)
	if err := svc.Award(context.Background(), 2, -rules.PostPoints); err != nil {
		t.Fatalf("Award: %v", err)
	}

	if got := accounts.roles[2]; got != enums.RoleLevel1 {
		t.Fatalf("role = %s, want %s", got, enums.RoleLevel1)
	}
}
