// Package memory is an in-process schedule store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/errors"
)

type scheduleRepository struct {
	mu        sync.RWMutex
	schedules []*domain.BusSchedule
	logger    *zap.Logger
	now       func() time.Time
}

func NewScheduleRepository(logger *zap.Logger) repository.ScheduleRepository {
	return &scheduleRepository{
		logger: logger,
		now:    time.Now,
	}
}

func (r *scheduleRepository) Insert(_ context.Context, schedule *domain.BusSchedule) error {
	if !schedule.HasRoute() {
		return errors.ErrRouteRequired
	}
	if schedule.Bus == nil {
		schedule.Bus = &domain.Bus{}
	}
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	if schedule.Bus.ID == uuid.Nil {
		schedule.Bus.ID = uuid.New()
	}
	schedule.CreatedAt = r.now().UTC()

	r.mu.Lock()
	r.schedules = append(r.schedules, clone(schedule))
	r.mu.Unlock()

	r.logger.Debug("Schedule inserted", zap.String("schedule_id", schedule.ID.String()))
	return nil
}

func (r *scheduleRepository) List(_ context.Context) ([]*domain.BusSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.BusSchedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, clone(s))
	}
	return out, nil
}

func (r *scheduleRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.BusSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.schedules {
		if s.ID == id {
			return clone(s), nil
		}
	}
	return nil, errors.ErrScheduleNotFound
}

func (r *scheduleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.schedules {
		if s.ID == id {
			r.schedules = append(r.schedules[:i], r.schedules[i+1:]...)
			r.logger.Debug("Schedule deleted", zap.String("schedule_id", id.String()))
			return nil
		}
	}
	return errors.ErrScheduleNotFound
}

// clone - записи неизменяемы, наружу отдаём копии
func clone(s *domain.BusSchedule) *domain.BusSchedule {
	cp := *s
	if s.Location != nil {
		cp.Location = make(domain.PickupLocation, len(s.Location))
		for k, v := range s.Location {
			cp.Location[k] = v
		}
	}
	if s.Bus != nil {
		bus := *s.Bus
		if s.Bus.Rating != nil {
			rating := *s.Bus.Rating
			bus.Rating = &rating
		}
		cp.Bus = &bus
	}
	return &cp
}
