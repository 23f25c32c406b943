package user

import (
	"context"
	"errors"

	"github.com/Knnivedh/job-rec/internal/domain/user"
	"github.com/Knnivedh/job-rec/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("User profile not found")
	ErrInternal = errors.New("internal error")
)

// Profile is the signed-in user with the skills recorded from résumés.
type Profile struct {
	User   user.User
	Skills []string
}

type Service struct {
	users  user.Repository
	skills repository.UserSkillRepository
}

func NewService(users user.Repository, skills repository.UserSkillRepository) *Service {
	return &Service{users: users, skills: skills}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Profile, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	usr.PasswordHash = ""

	rows, err := s.skills.FindByUserID(ctx, userID)
	if err != nil {
		return Profile{}, ErrInternal
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return Profile{User: usr, Skills: names}, nil
}
