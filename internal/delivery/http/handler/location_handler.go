package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/pkg/utils"
	"github.com/nextbus-service/internal/pkg/validator"
	"github.com/nextbus-service/internal/usecase"
	"github.com/nextbus-service/internal/usecase/dto"
)

// LocationHandler - состояние провайдера локации и колбэки устройства
type LocationHandler struct {
	provider *usecase.LocationProvider
	logger   *zap.Logger
}

func NewLocationHandler(provider *usecase.LocationProvider, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		provider: provider,
		logger:   logger,
	}
}

// Get godoc
// @Summary Текущая локация
// @Description Статус разрешения, включены ли обновления, последняя координата и адрес
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.provider.Snapshot(), nil)
}

// ReportFix godoc
// @Summary Новый фикс позиции
// @Description Фикс принимается только при включённых обновлениях
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.ReportFixRequest true "Координата"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReportFixResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location/fixes [post]
func (h *LocationHandler) ReportFix(c *fiber.Ctx) error {
	var req dto.ReportFixRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	accepted, err := h.provider.ReportFix(c.Context(), req.Coordinate())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ReportFixResponse{Accepted: accepted}, nil)
}

// RequestAuthorization godoc
// @Summary Запросить разрешение на геолокацию
// @Tags Location
// @Produce json
// @Success 202 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location/authorization/request [post]
func (h *LocationHandler) RequestAuthorization(c *fiber.Ctx) error {
	if _, err := h.provider.RequestAuthorization(c.Context()); err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: h.provider.Snapshot()})
}

// SetAuthorization godoc
// @Summary Результат запроса разрешения
// @Description authorized включает обновления, denied и restricted выключают
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.SetAuthorizationRequest true "Статус"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location/authorization [put]
func (h *LocationHandler) SetAuthorization(c *fiber.Ctx) error {
	var req dto.SetAuthorizationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	status, ok := domain.ParseAuthorizationStatus(req.Status)
	if !ok {
		return utils.SendError(c, errors.ErrInvalidAuthorization.WithDetails(map[string]interface{}{
			"status": req.Status,
		}))
	}

	if err := h.provider.SetAuthorization(c.Context(), status); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.provider.Snapshot(), nil)
}

// StartUpdating godoc
// @Summary Включить приём фиксов
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location/updating/start [post]
func (h *LocationHandler) StartUpdating(c *fiber.Ctx) error {
	h.provider.StartUpdating()
	return utils.SendSuccess(c, h.provider.Snapshot(), nil)
}

// StopUpdating godoc
// @Summary Выключить приём фиксов
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Router /api/v1/location/updating/stop [post]
func (h *LocationHandler) StopUpdating(c *fiber.Ctx) error {
	h.provider.StopUpdating()
	return utils.SendSuccess(c, h.provider.Snapshot(), nil)
}

// FetchAddress godoc
// @Summary Адрес координаты
// @Description Обратное геокодирование переданной координаты или последней известной. Неудача -> available=false
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.FetchAddressRequest false "Координата"
// @Success 200 {object} utils.SuccessResponse{data=dto.AddressResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/location/address [post]
func (h *LocationHandler) FetchAddress(c *fiber.Ctx) error {
	var req dto.FetchAddressRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	if req.Partial() {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	coord := req.Coordinate()
	if coord == nil {
		if last, ok := h.provider.LastKnownCoordinate(); ok {
			coord = &last
		}
	}

	address, ok := h.provider.FetchAddress(c.Context(), coord)
	return utils.SendSuccess(c, dto.AddressResponse{
		Address:    address,
		Available:  ok,
		Coordinate: coord,
	}, nil)
}

// RefreshAddress godoc
// @Summary Повторить определение адреса
// @Description Ждёт координату (не дольше LOCATION_WAIT_TIMEOUT) и определяет её адрес
// @Tags Location
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AddressResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/location/address/refresh [post]
func (h *LocationHandler) RefreshAddress(c *fiber.Ctx) error {
	result, err := h.provider.LocateAndResolve(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
