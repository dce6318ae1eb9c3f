package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	settingsRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/settings"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/policy"
	"github.com/chemlab-portal/booking-service/internal/service/settings/models"
)

// Service сервис для управления настройками окна бронирования
type Service struct {
	settingsRepo SettingsRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает действующие настройки окна бронирования (только администратор)
func (s *Service) Get(ctx context.Context, actorID int64) (*models.SettingsResponse, error) {
	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		s.logger.Warn("Get: access denied for user=%d", actorID)
		return nil, ErrAccessDenied
	}

	current, err := s.settingsRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(current), nil
}

// Update сохраняет новую версию настроек окна бронирования (только администратор)
//
// Настройки версионируются: каждое сохранение добавляет новую строку,
// действующей становится последняя по updated_at.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: saving booking window settings by user=%d", req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		s.logger.Warn("Update: access denied for user=%d", req.ActorID)
		return nil, ErrAccessDenied
	}

	newSettings, err := s.buildSettings(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.settingsRepo.Save(ctx, newSettings)
	if err != nil {
		s.logger.Error("Update: failed to save settings: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved, version id=%d", saved.ID)
	return models.FromDomainSettings(saved), nil
}

// CurrentWindow возвращает публичное состояние окна бронирования
// Отсутствие сохранённых настроек трактуется как закрытое окно
func (s *Service) CurrentWindow(ctx context.Context) (*models.BookingWindowResponse, error) {
	current, err := s.settingsRepo.GetLatest(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("CurrentWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CurrentWindow - repository error: %v", ErrInternal, err)
	}

	decision := policy.Evaluate(s.timeProvider.Now(), current)

	return &models.BookingWindowResponse{
		Allowed: decision.Allowed,
		Window:  string(decision.Window),
		Message: decision.Message,
	}, nil
}

// Вспомогательные методы

func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !u.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}

// buildSettings валидирует запрос и собирает domain модель
func (s *Service) buildSettings(req *models.UpdateSettingsRequest) (*domain.BookingWindowSettings, error) {
	regularDays, err := normalizeDays(req.RegularAllowedDays)
	if err != nil {
		return nil, fmt.Errorf("%w: regular allowed days: %v", ErrInvalidInput, err)
	}

	emergencyDays, err := normalizeDays(req.EmergencyAllowedDays)
	if err != nil {
		return nil, fmt.Errorf("%w: emergency allowed days: %v", ErrInvalidInput, err)
	}

	newSettings := &domain.BookingWindowSettings{
		IsRegularBookingEnabled: req.IsRegularBookingEnabled,
		RegularAllowedDays:      regularDays,
		Message:                 req.Message,
		IsEmergencyBookingOpen:  req.IsEmergencyBookingOpen,
		EmergencyAllowedDays:    emergencyDays,
		EmergencyMessage:        req.EmergencyMessage,
		UpdatedBy:               req.ActorID,
	}

	if req.EmergencyBookingStart != nil {
		start, err := time.Parse(time.RFC3339, *req.EmergencyBookingStart)
		if err != nil {
			return nil, fmt.Errorf("%w: emergency booking start must be RFC 3339", ErrInvalidInput)
		}
		newSettings.EmergencyBookingStart = &start
	}

	if req.EmergencyBookingEnd != nil {
		end, err := time.Parse(time.RFC3339, *req.EmergencyBookingEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: emergency booking end must be RFC 3339", ErrInvalidInput)
		}
		newSettings.EmergencyBookingEnd = &end
	}

	if newSettings.HasEmergencyBounds() &&
		newSettings.EmergencyBookingEnd.Before(*newSettings.EmergencyBookingStart) {
		return nil, fmt.Errorf("%w: emergency booking end is before start", ErrInvalidInput)
	}

	return newSettings, nil
}

// normalizeDays приводит имена дней недели к нижнему регистру и валидирует их
func normalizeDays(days []string) ([]string, error) {
	normalized := make([]string, 0, len(days))

	for _, day := range days {
		name, ok := domain.NormalizeWeekday(day)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", day)
		}
		normalized = append(normalized, name)
	}

	return normalized, nil
}
