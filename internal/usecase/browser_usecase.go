package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/usecase/dto"
)

// BrowserUseCase - список, карточка и удаление сохранённых расписаний
type BrowserUseCase struct {
	scheduleRepo repository.ScheduleRepository
	logger       *zap.Logger
}

func NewBrowserUseCase(scheduleRepo repository.ScheduleRepository, logger *zap.Logger) *BrowserUseCase {
	return &BrowserUseCase{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// List - записи в порядке вставки с полями для отображения
func (uc *BrowserUseCase) List(ctx context.Context) (*dto.ScheduleListResponse, error) {
	schedules, err := uc.scheduleRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list schedules", zap.Error(err))
		return nil, err
	}

	items := make([]dto.ScheduleListItem, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, dto.NewScheduleListItem(s))
	}

	return &dto.ScheduleListResponse{
		Schedules: items,
		Total:     len(items),
	}, nil
}

// Detail - карточка; координата только если запись пригодна для карты
func (uc *BrowserUseCase) Detail(ctx context.Context, id uuid.UUID) (*dto.ScheduleDetailResponse, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewScheduleDetail(schedule), nil
}

// Delete - без подтверждения
func (uc *BrowserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.scheduleRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Schedule deleted", zap.String("schedule_id", id.String()))
	return nil
}
