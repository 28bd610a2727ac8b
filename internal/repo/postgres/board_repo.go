package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingsubin/soob/internal/domain/model"
)

var ErrBoardNotFound = errors.New("board not found")

type BoardRepo struct {
	pool *pgxpool.Pool
}

func NewBoardRepo(pool *pgxpool.Pool) *BoardRepo {
	return &BoardRepo{pool: pool}
}

func (r *BoardRepo) FindByID(ctx context.Context, id int64) (model.Board, error) {
	if id <= 0 {
		return model.Board{}, fmt.Errorf("invalid board id")
	}

	var board model.Board
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM boards WHERE id = $1`, id).
		Scan(&board.ID, &board.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Board{}, ErrBoardNotFound
		}
		return model.Board{}, fmt.Errorf("find board: %w", err)
	}
	return board, nil
}

func (r *BoardRepo) List(ctx context.Context) ([]model.Board, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := make([]model.Board, 0, 8)
	for rows.Next() {
		var board model.Board
		if err := rows.Scan(&board.ID, &board.Name); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, board)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate boards: %w", rows.Err())
	}
	return boards, nil
}
