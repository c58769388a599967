package app

import (
	"context"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
)

type UserService struct {
	repo   port.UserRepository
	slider entity.ThresholdSlider
}

func NewUserService(repo port.UserRepository, slider entity.ThresholdSlider) *UserService {
	return &UserService{repo: repo, slider: slider}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) Slider() entity.ThresholdSlider {
	return s.slider
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, user.ID, state); err != nil {
		return nil, err
	}
	user.SetState(state)

	return user, nil
}

// SetThreshold сохраняет порог оттенка пользователя и возвращает его в главное меню.
func (s *UserService) SetThreshold(ctx context.Context, userID, chatID int64, threshold int) (*entity.User, error) {
	if err := s.slider.Validate(threshold); err != nil {
		return nil, err
	}

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetHueThreshold(threshold)
	user.SetState(entity.StateMainMenu)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) AwaitThreshold(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingThreshold)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
