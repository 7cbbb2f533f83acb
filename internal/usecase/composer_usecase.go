package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/config"
	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/usecase/dto"
)

// LocationSource - то, что композеру нужно от провайдера локации
type LocationSource interface {
	RequestAuthorization(ctx context.Context) (domain.AuthorizationStatus, error)
	StartUpdating()
	LastKnownCoordinate() (domain.Coordinate, bool)
	CurrentAddress() (string, bool)
	LocateAndResolve(ctx context.Context) (*dto.AddressResponse, error)
}

// draftEntry - черновик и его мьютекс: update и confirm одного черновика
// выполняются последовательно
type draftEntry struct {
	mu    sync.Mutex
	draft *domain.ScheduleDraft
}

// ComposerUseCase - форма создания расписания:
// editing -> validating -> committing -> closed
type ComposerUseCase struct {
	scheduleRepo repository.ScheduleRepository
	location     LocationSource
	drafts       *gocache.Cache
	defaults     config.ComposerConfig
	logger       *zap.Logger
	now          func() time.Time

	// lifetime - контекст фоновых задач, не связанный с запросами
	lifetime context.Context
	stop     context.CancelFunc
}

func NewComposerUseCase(
	scheduleRepo repository.ScheduleRepository,
	location LocationSource,
	cfg config.ComposerConfig,
	logger *zap.Logger,
) *ComposerUseCase {
	lifetime, stop := context.WithCancel(context.Background())

	return &ComposerUseCase{
		scheduleRepo: scheduleRepo,
		location:     location,
		drafts:       gocache.New(cfg.DraftTTL, 2*cfg.DraftTTL),
		defaults:     cfg,
		logger:       logger,
		now:          time.Now,
		lifetime:     lifetime,
		stop:         stop,
	}
}

// Close отменяет фоновое определение адреса
func (uc *ComposerUseCase) Close() {
	uc.stop()
}

// Open - новый черновик со значениями по умолчанию. Заодно запрашивает
// разрешение на геолокацию и включает обновления, как при открытии формы.
func (uc *ComposerUseCase) Open(ctx context.Context) (*dto.DraftResponse, error) {
	draft := uc.newDraft()

	if _, err := uc.location.RequestAuthorization(ctx); err != nil {
		uc.logger.Warn("Failed to request location authorization", zap.Error(err))
	}
	uc.location.StartUpdating()

	if _, ok := uc.location.CurrentAddress(); !ok {
		// "Locating..." в фоне. Контекст запроса сюда не передаётся:
		// fiber переиспользует его после ответа
		go uc.resolveLocation(uc.lifetime)
	}

	uc.logger.Debug("Schedule draft opened", zap.String("draft_id", draft.ID.String()))

	resp := dto.NewDraftResponse(draft)
	return &resp, nil
}

// newDraft кладёт в кеш черновик со значениями по умолчанию
func (uc *ComposerUseCase) newDraft() *domain.ScheduleDraft {
	now := uc.now().UTC()
	draft := &domain.ScheduleDraft{
		ID:        uuid.New(),
		State:     domain.ComposerEditing,
		Timestamp: now,
		Type:      domain.ParseProvider(uc.defaults.DefaultType),
		Tier:      domain.ParseTier(uc.defaults.DefaultTier),
		Seating:   domain.ParseSeating(uc.defaults.DefaultSeating),
		OpenedAt:  now,
	}
	uc.drafts.SetDefault(draft.ID.String(), &draftEntry{draft: draft})
	return draft
}

// Get - текущее состояние черновика
func (uc *ComposerUseCase) Get(_ context.Context, id uuid.UUID) (*dto.DraftResponse, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	resp := dto.NewDraftResponse(entry.draft)
	return &resp, nil
}

// Update - изменение полей, только в editing
func (uc *ComposerUseCase) Update(_ context.Context, id uuid.UUID, req dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.draft.Editable() {
		return nil, errors.ErrDraftNotEditable
	}
	applyDraftPatch(entry.draft, req)

	// продлеваем жизнь черновика
	uc.drafts.SetDefault(id.String(), entry)

	resp := dto.NewDraftResponse(entry.draft)
	return &resp, nil
}

// Confirm - валидация и сохранение. Пустой маршрут возвращает черновик
// в editing без записи; ошибка вставки тоже.
func (uc *ComposerUseCase) Confirm(ctx context.Context, id uuid.UUID) (*dto.ConfirmDraftResponse, error) {
	entry, err := uc.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	draft := entry.draft
	if !draft.Editable() {
		return nil, errors.ErrDraftNotEditable
	}

	draft.State = domain.ComposerValidating
	if strings.TrimSpace(draft.Route) == "" {
		draft.State = domain.ComposerEditing
		return nil, errors.ErrRouteRequired
	}

	draft.State = domain.ComposerCommitting
	schedule := uc.buildSchedule(draft)

	if err := uc.scheduleRepo.Insert(ctx, schedule); err != nil {
		draft.State = domain.ComposerEditing
		uc.logger.Error("Failed to commit schedule draft",
			zap.String("draft_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	draft.State = domain.ComposerClosed
	draft.ScheduleID = &schedule.ID
	uc.drafts.Delete(id.String())

	uc.logger.Info("Schedule committed",
		zap.String("draft_id", id.String()),
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("route", schedule.Route))

	return &dto.ConfirmDraftResponse{
		Draft:    dto.NewDraftResponse(draft),
		Schedule: dto.NewScheduleDetail(schedule),
	}, nil
}

// Cancel - закрыть без побочных эффектов
func (uc *ComposerUseCase) Cancel(_ context.Context, id uuid.UUID) error {
	entry, err := uc.entry(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.draft.Editable() {
		return errors.ErrDraftNotEditable
	}
	entry.draft.State = domain.ComposerClosed
	uc.drafts.Delete(id.String())

	uc.logger.Debug("Schedule draft cancelled", zap.String("draft_id", id.String()))
	return nil
}

// Compose - open + update + confirm одним вызовом (POST /schedules).
// Провайдер локации не трогается: место и координата берутся из того,
// что уже известно. При ошибке черновик не остаётся висеть в кеше.
func (uc *ComposerUseCase) Compose(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleDetailResponse, error) {
	draft := uc.newDraft()
	id := draft.ID

	patch := dto.UpdateDraftRequest{
		Timestamp: req.Timestamp,
		Route:     &req.Route,
		Pickup:    &req.Pickup,
		Type:      req.Type,
		Tier:      req.Tier,
		Seating:   req.Seating,
		Rating:    req.Rating,
		Plate:     &req.Plate,
	}
	if _, err := uc.Update(ctx, id, patch); err != nil {
		uc.drafts.Delete(id.String())
		return nil, err
	}

	confirmed, err := uc.Confirm(ctx, id)
	if err != nil {
		uc.drafts.Delete(id.String())
		return nil, err
	}
	return confirmed.Schedule, nil
}

func (uc *ComposerUseCase) entry(id uuid.UUID) (*draftEntry, error) {
	v, ok := uc.drafts.Get(id.String())
	if !ok {
		return nil, errors.ErrDraftNotFound
	}
	return v.(*draftEntry), nil
}

// buildSchedule - place: pickup, иначе текущий адрес, иначе "".
// location только при наличии координаты.
func (uc *ComposerUseCase) buildSchedule(draft *domain.ScheduleDraft) *domain.BusSchedule {
	address, _ := uc.location.CurrentAddress()

	place := strings.TrimSpace(draft.Pickup)
	if place == "" {
		place = address
	}

	var location domain.PickupLocation
	if coord, ok := uc.location.LastKnownCoordinate(); ok {
		location = domain.NewPickupLocation(coord, address)
	}

	return &domain.BusSchedule{
		ID:        uuid.New(),
		Timestamp: draft.Timestamp,
		Route:     strings.TrimSpace(draft.Route),
		Place:     place,
		Location:  location,
		Bus: &domain.Bus{
			ID:     uuid.New(),
			Type:   draft.Type,
			Tier:   draft.Tier,
			Rating: draft.Rating,
			Plate:  strings.TrimSpace(draft.Plate),
		},
		Seating: draft.Seating,
	}
}

func (uc *ComposerUseCase) resolveLocation(ctx context.Context) {
	resolved, err := uc.location.LocateAndResolve(ctx)
	if err != nil {
		uc.logger.Debug("Background location resolve finished without fix", zap.Error(err))
		return
	}
	if !resolved.Available {
		uc.logger.Debug("Background location resolve found no address")
	}
}

func applyDraftPatch(d *domain.ScheduleDraft, req dto.UpdateDraftRequest) {
	if req.Timestamp != nil {
		d.Timestamp = req.Timestamp.UTC()
	}
	if req.Route != nil {
		d.Route = *req.Route
	}
	if req.Pickup != nil {
		d.Pickup = *req.Pickup
	}
	if req.Type != nil {
		d.Type = domain.ParseProvider(*req.Type)
	}
	if req.Tier != nil {
		d.Tier = domain.ParseTier(*req.Tier)
	}
	if req.Seating != nil {
		d.Seating = domain.ParseSeating(*req.Seating)
	}
	if req.Rating != nil {
		rating := *req.Rating
		d.Rating = &rating
	}
	if req.Plate != nil {
		d.Plate = *req.Plate
	}
}
