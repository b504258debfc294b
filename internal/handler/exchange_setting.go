package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/pagination"
	"github.com/maxviazov/exchange-settings-service/internal/service"
	"github.com/maxviazov/exchange-settings-service/pkg/response"
	"github.com/rs/zerolog"
)

const serviceTimeout = 5 * time.Second

type ExchangeSettingHandler struct {
	svc   service.ExchangeSettingService
	pages PageDefaults
}

func NewExchangeSettingHandler(svc service.ExchangeSettingService, pages PageDefaults) *ExchangeSettingHandler {
	if pages.DefaultSize <= 0 {
		pages.DefaultSize = 20
	}
	if pages.MaxSize < pages.DefaultSize {
		pages.MaxSize = pages.DefaultSize
	}
	return &ExchangeSettingHandler{svc: svc, pages: pages}
}

func (h *ExchangeSettingHandler) Register(r *gin.RouterGroup) {
	g := r.Group(SettingsPath)
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return 0, false
	}
	return id, true
}

func (h *ExchangeSettingHandler) create(c *gin.Context) {
	var req service.CreateSettingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // parser details are not echoed back
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	dto, err := h.svc.CreateSetting(ctx, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", APIV1Prefix+SettingsPath+"/"+strconv.FormatInt(dto.ID, 10))
	response.WriteData(c, http.StatusCreated, dto)
}

func (h *ExchangeSettingHandler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	dto, err := h.svc.GetSetting(ctx, id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dto)
}

func (h *ExchangeSettingHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateSettingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	dto, err := h.svc.UpdateSetting(ctx, id, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dto)
}

func (h *ExchangeSettingHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	if err := h.svc.DeleteSetting(ctx, id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// list serves GET /exchange-settings?page=N&page_size=M&exchange=X.
// A garbled page falls back to the first page; a garbled or non-positive page_size is a 400.
func (h *ExchangeSettingHandler) list(c *gin.Context) {
	start := time.Now()
	req := pagination.ParseRequest(c.Query("page"), c.Query("page_size"), h.pages.DefaultSize, h.pages.MaxSize)
	filter := model.ExchangeSettingFilter{Exchange: c.Query("exchange")}

	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	page, err := h.svc.ListSettings(ctx, filter, req.PageNumber, req.PageSize)

	logger := zerolog.Ctx(c.Request.Context()).With().
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("failed to list exchange settings")
		response.WriteError(c, err)
		return
	}

	logger.Debug().Int("page", page.PageNumber).Int("items", len(page.Items)).Int("total", page.TotalCount).Msg("exchange settings listed")
	response.WriteData(c, http.StatusOK, page)
}
