package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/collegehub/collegehub-api/internal/api/handler/v1/response"
	"github.com/collegehub/collegehub-api/internal/api/middleware"
	"github.com/collegehub/collegehub-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	CreateUser(ctx context.Context, actor domain.User, user domain.User) (domain.User, error)
	ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.User, update domain.User) (domain.User, error)
	ChangePassword(ctx context.Context, actor domain.User, currentPassword, newPassword string) error
	DeleteUser(ctx context.Context, actor domain.User, id uint) error
}

// getActorFromContext resolves the verified token claims to a fresh user
// record, so role or department changes take effect without re-login.
func getActorFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	claims, err := middleware.GetClaims(ctx)
	if err != nil {
		return domain.User{}, &response.Err{
			StatusCode: http.StatusUnauthorized,
			Message:    "authentication required",
		}
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		return domain.User{}, &response.Err{
			StatusCode: http.StatusUnauthorized,
			Message:    "unknown user",
		}
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
