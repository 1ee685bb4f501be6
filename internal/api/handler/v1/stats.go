package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegehub/collegehub-api/internal/api/handler/v1/response"
	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/service"
)

type StatsService interface {
	Overview(ctx context.Context, actor domain.User) (domain.Overview, error)
}

type StatsHandler struct {
	svc  StatsService
	uSvc UserService
}

func NewStatsHandler(svc StatsService, uSvc UserService) *StatsHandler {
	return &StatsHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetOverview godoc
// @Summary      Get dashboard counts (staff only)
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.Overview
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stats/overview [get]
// @Security BearerAuth
func (h *StatsHandler) HandleGetOverview(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	overview, err := h.svc.Overview(ctx.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))

			return
		}

		err = fmt.Errorf("v1.HandleGetOverview -> h.svc.Overview -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, overview)
}
