package model

import (
	"time"

	"github.com/kingsubin/soob/internal/domain/enums"
)

type Account struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Nickname       string     `json:"nickname"`
	LevelPoint     int        `json:"level_point"`
	Role           enums.Role `json:"role"`
	ProfileImageID *int64     `json:"profile_image_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
