package dto

import (
	"time"

	"github.com/kingsubin/soob/internal/domain/model"
)

type SignupRequest struct {
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type UpdateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

type UpdateProfileImageRequest struct {
	AttachmentID int64 `json:"attachment_id"`
}

type AccountResponse struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Nickname       string    `json:"nickname"`
	LevelPoint     int       `json:"level_point"`
	Role           string    `json:"role"`
	ProfileImageID *int64    `json:"profile_image_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAccountResponse(account model.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Email:          account.Email,
		Nickname:       account.Nickname,
		LevelPoint:     account.LevelPoint,
		Role:           string(account.Role),
		ProfileImageID: account.ProfileImageID,
		CreatedAt:      account.CreatedAt,
	}
}

type DuplicatedResponse struct {
	Duplicated bool `json:"duplicated"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
