package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/pkg/utils"
	"github.com/nextbus-service/internal/pkg/validator"
	"github.com/nextbus-service/internal/usecase"
	"github.com/nextbus-service/internal/usecase/dto"
)

// ScheduleHandler - список, карточка, удаление и быстрое создание записей
type ScheduleHandler struct {
	browserUC  *usecase.BrowserUseCase
	composerUC *usecase.ComposerUseCase
	logger     *zap.Logger
}

func NewScheduleHandler(browserUC *usecase.BrowserUseCase, composerUC *usecase.ComposerUseCase, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		browserUC:  browserUC,
		composerUC: composerUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Список расписаний
// @Description Записи в порядке добавления с городом, метками тарифа и перевозчика, признаком карты
// @Tags Schedules
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/schedules [get]
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	result, err := h.browserUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Get godoc
// @Summary Карточка расписания
// @Tags Schedules
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScheduleDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [get]
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.browserUC.Detail(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Удаление расписания
// @Description Удаляет запись и её автобус без подтверждения
// @Tags Schedules
// @Param id path string true "ID записи"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.browserUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Create godoc
// @Summary Создание расписания одним запросом
// @Description Открывает черновик, применяет поля и подтверждает его. Пустой маршрут -> 422 ROUTE_REQUIRED.
// @Description В отличие от POST /composer/drafts не запрашивает геолокацию и не ждёт координату:
// @Description место и локация берутся из уже известного провайдеру
// @Tags Schedules
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Поля записи"
// @Success 201 {object} utils.SuccessResponse{data=dto.ScheduleDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.composerUC.Compose(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}
