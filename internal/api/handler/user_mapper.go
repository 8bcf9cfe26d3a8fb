package handler

import (
	"time"

	"github.com/userhub/account-service/internal/core/domain"
)

const birthDateLayout = "2006-01-02"

// toUserResponse maps the domain entity to its outward shape. The stored
// password hash is deliberately absent.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		BirthDate: u.BirthDate.Format(birthDateLayout),
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
