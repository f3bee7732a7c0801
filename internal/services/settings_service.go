package services

import (
	"context"
	"strings"

	apperrors "log-owl.com/log-owl/internal/errors"
	repository "log-owl.com/log-owl/internal/repositories"
	model "log-owl.com/log-owl/pkg/models"
)

type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.ErrKeyRequired
	}
	value, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrSettingNotFound
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (s *SettingsService) SetSetting(ctx context.Context, key, value string) (*model.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.ErrKeyRequired
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return nil, err
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (s *SettingsService) ListSettings(ctx context.Context) ([]model.Setting, error) {
	return s.repo.All(ctx)
}

func (s *SettingsService) DeleteSetting(ctx context.Context, key string) error {
	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrSettingNotFound
	}
	return nil
}
