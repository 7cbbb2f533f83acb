package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/errors"
)

type scheduleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewScheduleRepository(db *DB) repository.ScheduleRepository {
	return &scheduleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// scheduleRow - строка JOIN bus_schedules + buses
type scheduleRow struct {
	ID        uuid.UUID             `db:"id"`
	Timestamp time.Time             `db:"departure_at"`
	Route     string                `db:"route"`
	Place     string                `db:"place"`
	Location  domain.PickupLocation `db:"location"`
	Seating   domain.Seating        `db:"seating"`
	CreatedAt time.Time             `db:"created_at"`

	BusID     uuid.UUID       `db:"bus_id"`
	BusType   domain.Provider `db:"bus_type"`
	BusTier   domain.Tier     `db:"bus_tier"`
	BusRating *float64        `db:"bus_rating"`
	BusPlate  string          `db:"bus_plate"`
}

func (r scheduleRow) toDomain() *domain.BusSchedule {
	return &domain.BusSchedule{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Route:     r.Route,
		Place:     r.Place,
		Location:  r.Location,
		Seating:   r.Seating,
		CreatedAt: r.CreatedAt,
		Bus: &domain.Bus{
			ID:     r.BusID,
			Type:   r.BusType,
			Tier:   r.BusTier,
			Rating: r.BusRating,
			Plate:  r.BusPlate,
		},
	}
}

const selectSchedules = `
	SELECT
		s.id, s.departure_at, s.route, s.place, s.location, s.seating, s.created_at,
		b.id AS bus_id, b.type AS bus_type, b.tier AS bus_tier,
		b.rating AS bus_rating, b.plate AS bus_plate
	FROM bus_schedules s
	JOIN buses b ON b.id = s.bus_id
`

func (r *scheduleRepository) Insert(ctx context.Context, schedule *domain.BusSchedule) error {
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

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer func() { _ = tx.Rollback() }()

	bus := schedule.Bus
	_, err = tx.ExecContext(ctx,
		`INSERT INTO buses (id, type, tier, rating, plate) VALUES ($1, $2, $3, $4, $5)`,
		bus.ID, bus.Type, bus.Tier, bus.Rating, bus.Plate,
	)
	if err != nil {
		r.logger.Error("Failed to insert bus", zap.String("bus_id", bus.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bus_schedules (id, departure_at, route, place, location, bus_id, seating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		schedule.ID, schedule.Timestamp, schedule.Route, schedule.Place,
		schedule.Location, bus.ID, schedule.Seating,
	).Scan(&schedule.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert schedule", zap.String("schedule_id", schedule.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit schedule insert", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Schedule inserted", zap.String("schedule_id", schedule.ID.String()))
	return nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]*domain.BusSchedule, error) {
	var rows []scheduleRow
	if err := r.db.SelectContext(ctx, &rows, selectSchedules+` ORDER BY s.seq`); err != nil {
		r.logger.Error("Failed to list schedules", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	schedules := make([]*domain.BusSchedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, row.toDomain())
	}
	return schedules, nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusSchedule, error) {
	var row scheduleRow
	err := r.db.GetContext(ctx, &row, selectSchedules+` WHERE s.id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrScheduleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get schedule", zap.String("schedule_id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return row.toDomain(), nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer func() { _ = tx.Rollback() }()

	var busID uuid.UUID
	err = tx.QueryRowxContext(ctx,
		`DELETE FROM bus_schedules WHERE id = $1 RETURNING bus_id`, id,
	).Scan(&busID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.ErrScheduleNotFound
	}
	if err != nil {
		r.logger.Error("Failed to delete schedule", zap.String("schedule_id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM buses WHERE id = $1`, busID); err != nil {
		r.logger.Error("Failed to delete bus", zap.String("bus_id", busID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit schedule delete", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Schedule deleted", zap.String("schedule_id", id.String()))
	return nil
}
