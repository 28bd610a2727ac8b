package dto

import "github.com/kingsubin/soob/internal/domain/model"

type BoardResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}

func NewBoardListResponse(boards []model.Board) BoardListResponse {
	out := BoardListResponse{Boards: make([]BoardResponse, 0, len(boards))}
	for _, board := range boards {
		out.Boards = append(out.Boards, BoardResponse{ID: board.ID, Name: board.Name})
	}
	return out
}
