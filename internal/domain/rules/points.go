package rules

import "github.com/kingsubin/soob/internal/domain/enums"

// Level points awarded to an author for board activity. A heart credits the
// author of the hearted post/comment, not the account pressing the heart.
const (
	PostPoints         = 10
	CommentPoints      = 5
	PostHeartPoints    = 20
	CommentHeartPoints = 10
)

const (
	level2Threshold = 250
	level3Threshold = 750
)

// LevelFor maps accumulated points onto a board level. Manager and admin
// roles sit outside the point ladder and are never returned here.
func LevelFor(points int, current enums.Role) enums.Role {
	if current == enums.RoleManager || current == enums.RoleAdmin {
		return current
	}
	if current == enums.RoleNotPermitted {
		// Email verification, not points, grants the first level.
		return current
	}

	switch {
	case points >= level3Threshold:
		return enums.RoleLevel3
	case points >= level2Threshold:
		return enums.RoleLevel2
	default:
		return enums.RoleLevel1
	}
}
