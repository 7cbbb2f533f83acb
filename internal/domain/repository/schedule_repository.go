package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nextbus-service/internal/domain"
)

// ScheduleRepository - хранилище записей расписания
type ScheduleRepository interface {
	// Insert добавляет запись вместе с её автобусом, без дедупликации
	Insert(ctx context.Context, schedule *domain.BusSchedule) error

	// List возвращает записи в порядке вставки
	List(ctx context.Context) ([]*domain.BusSchedule, error)

	// GetByID возвращает запись или ErrScheduleNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BusSchedule, error)

	// Delete удаляет запись и её автобус; повторное удаление -> ErrScheduleNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
