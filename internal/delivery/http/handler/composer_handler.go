package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/pkg/utils"
	"github.com/nextbus-service/internal/pkg/validator"
	"github.com/nextbus-service/internal/usecase"
	"github.com/nextbus-service/internal/usecase/dto"
)

// ComposerHandler - черновики формы создания расписания
type ComposerHandler struct {
	composerUC *usecase.ComposerUseCase
	logger     *zap.Logger
}

func NewComposerHandler(composerUC *usecase.ComposerUseCase, logger *zap.Logger) *ComposerHandler {
	return &ComposerHandler{
		composerUC: composerUC,
		logger:     logger,
	}
}

// Open godoc
// @Summary Открыть черновик
// @Description Черновик с sltb / x1 / Available / текущим временем; запрашивает геолокацию
// @Tags Composer
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.DraftResponse}
// @Router /api/v1/composer/drafts [post]
func (h *ComposerHandler) Open(c *fiber.Ctx) error {
	result, err := h.composerUC.Open(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// Get godoc
// @Summary Состояние черновика
// @Tags Composer
// @Produce json
// @Param id path string true "ID черновика"
// @Success 200 {object} utils.SuccessResponse{data=dto.DraftResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/composer/drafts/{id} [get]
func (h *ComposerHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.composerUC.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Update godoc
// @Summary Изменить поля черновика
// @Tags Composer
// @Accept json
// @Produce json
// @Param id path string true "ID черновика"
// @Param request body dto.UpdateDraftRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=dto.DraftResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/composer/drafts/{id} [patch]
func (h *ComposerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateDraftRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.composerUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Confirm godoc
// @Summary Подтвердить черновик
// @Description Сохраняет запись. Пустой маршрут оставляет черновик в editing и возвращает 422
// @Tags Composer
// @Produce json
// @Param id path string true "ID черновика"
// @Success 201 {object} utils.SuccessResponse{data=dto.ConfirmDraftResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/composer/drafts/{id}/confirm [post]
func (h *ComposerHandler) Confirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.composerUC.Confirm(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// Cancel godoc
// @Summary Отменить черновик
// @Tags Composer
// @Param id path string true "ID черновика"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/composer/drafts/{id} [delete]
func (h *ComposerHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.composerUC.Cancel(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
