package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingsubin/soob/internal/domain/enums"
	"github.com/kingsubin/soob/internal/domain/model"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `
	id,
	email,
	password_hash,
	nickname,
	level_point,
	role,
	profile_image_id,
	created_at,
	updated_at
`

func (r *AccountRepo) Create(ctx context.Context, email, passwordHash, nickname string) (model.Account, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(passwordHash) == "" || strings.TrimSpace(nickname) == "" {
		return model.Account{}, fmt.Errorf("invalid account payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO accounts (
	email,
	password_hash,
	nickname,
	level_point,
	role,
	created_at,
	updated_at
) VALUES ($1, $2, $3, 0, $4, NOW(), NOW())
RETURNING`+accountColumns, email, passwordHash, nickname, string(enums.RoleNotPermitted))

	account, err := scanAccount(row)
	if err != nil {
		return model.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (model.Account, error) {
	if id <= 0 {
		return model.Account{}, fmt.Errorf("invalid account id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+accountColumns+`
FROM accounts
WHERE id = $1
`, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("find account by id: %w", err)
	}
	return account, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	if strings.TrimSpace(email) == "" {
		return model.Account{}, fmt.Errorf("invalid account email")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+accountColumns+`
FROM accounts
WHERE email = $1
`, email)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("find account by email: %w", err)
	}
	return account, nil
}

func (r *AccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM accounts WHERE email = $1 LIMIT 1`, email).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check email duplicated: %w", err)
	}
	return true, nil
}

func (r *AccountRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM accounts WHERE nickname = $1 LIMIT 1`, nickname).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check nickname duplicated: %w", err)
	}
	return true, nil
}

func (r *AccountRepo) UpdateNickname(ctx context.Context, id int64, nickname string) error {
	result, err := r.pool.Exec(ctx, `
UPDATE accounts SET nickname = $2, updated_at = NOW() WHERE id = $1
`, id, nickname)
	if err != nil {
		return fmt.Errorf("update nickname: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.pool.Exec(ctx, `
UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE id = $1
`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	result, err := r.pool.Exec(ctx, `
UPDATE accounts SET password_hash = $2, updated_at = NOW() WHERE email = $1
`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("update password by email: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) UpdateProfileImage(ctx context.Context, id, attachmentID int64) error {
	result, err := r.pool.Exec(ctx, `
UPDATE accounts SET profile_image_id = $2, updated_at = NOW() WHERE id = $1
`, id, attachmentID)
	if err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) UpdateRole(ctx context.Context, id int64, role enums.Role) error {
	result, err := r.pool.Exec(ctx, `
UPDATE accounts SET role = $2, updated_at = NOW() WHERE id = $1
`, id, string(role))
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// AdjustLevelPoint applies a point delta atomically and returns the new
// balance together with the current role so the caller can re-derive the
// level.
func (r *AccountRepo) AdjustLevelPoint(ctx context.Context, id int64, delta int) (int, enums.Role, error) {
	var points int
	var role string
	err := r.pool.QueryRow(ctx, `
UPDATE accounts
SET level_point = level_point + $2, updated_at = NOW()
WHERE id = $1
RETURNING level_point, role
`, id, delta).Scan(&points, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrAccountNotFound
		}
		return 0, "", fmt.Errorf("adjust level point: %w", err)
	}
	return points, enums.Role(role), nil
}

func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	var role string
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Nickname,
		&account.LevelPoint,
		&role,
		&account.ProfileImageID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return model.Account{}, err
	}
	account.Role = enums.Role(role)
	return account, nil
}
