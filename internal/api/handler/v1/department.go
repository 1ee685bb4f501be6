package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegehub/collegehub-api/internal/api/handler/v1/request"
	"github.com/collegehub/collegehub-api/internal/api/handler/v1/response"
	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/service"
)

type DepartmentService interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	GetDepartment(ctx context.Context, id uint) (domain.Department, error)
	CreateDepartment(ctx context.Context, actor domain.User, department domain.Department) (domain.Department, error)
	UpdateDepartment(ctx context.Context, actor domain.User, department domain.Department) (domain.Department, error)
	DeleteDepartment(ctx context.Context, actor domain.User, id uint) error
}

type DepartmentHandler struct {
	svc  DepartmentService
	uSvc UserService
}

func NewDepartmentHandler(svc DepartmentService, uSvc UserService) *DepartmentHandler {
	return &DepartmentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListDepartments godoc
// @Summary      List all departments
// @Tags         departments
// @Produce      json
// @Success      200  {array}   domain.Department
// @Failure      500  {object}  response.Err
// @Router       /departments [get]
// @Security BearerAuth
func (h *DepartmentHandler) HandleListDepartments(ctx *gin.Context) {
	departments, err := h.svc.ListDepartments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDepartments -> h.svc.ListDepartments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, departments)
}

// HandleGetDepartment godoc
// @Summary      Get a department by ID
// @Tags         departments
// @Produce      json
// @Param        departmentID  path      int  true  "department ID"
// @Success      200  {object}  domain.Department
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /departments/{departmentID} [get]
// @Security BearerAuth
func (h *DepartmentHandler) HandleGetDepartment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "departmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	department, err := h.svc.GetDepartment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("department", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetDepartment -> h.svc.GetDepartment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, department)
}

// HandleCreateDepartment godoc
// @Summary      Create a department (admin only)
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateDepartmentRequest  true  "department details"
// @Success      201    {object}  domain.Department
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /departments [post]
// @Security BearerAuth
func (h *DepartmentHandler) HandleCreateDepartment(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	department := domain.Department{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
	}

	created, err := h.svc.CreateDepartment(ctx.Request.Context(), actor, department)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		case errors.Is(err, service.ErrDepartmentExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDepartmentExists))
		default:
			err = fmt.Errorf("v1.HandleCreateDepartment -> h.svc.CreateDepartment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateDepartment godoc
// @Summary      Update a department (admin only)
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        departmentID  path      int  true  "department ID"
// @Param        input         body      request.UpdateDepartmentRequest  true  "department details"
// @Success      200  {object}  domain.Department
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /departments/{departmentID} [put]
// @Security BearerAuth
func (h *DepartmentHandler) HandleUpdateDepartment(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "departmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.UpdateDepartmentRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	department := domain.Department{
		ID:          id,
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		HodID:       input.HodID,
	}

	updated, err := h.svc.UpdateDepartment(ctx.Request.Context(), actor, department)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("department", "ID", id))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		case errors.Is(err, service.ErrInvalidRole):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))
		default:
			err = fmt.Errorf("v1.HandleUpdateDepartment -> h.svc.UpdateDepartment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteDepartment godoc
// @Summary      Delete a department (admin only)
// @Tags         departments
// @Produce      json
// @Param        departmentID  path      int  true  "department ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /departments/{departmentID} [delete]
// @Security BearerAuth
func (h *DepartmentHandler) HandleDeleteDepartment(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "departmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteDepartment(ctx.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("department", "ID", id))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleDeleteDepartment -> h.svc.DeleteDepartment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "department deleted successfully"})
}
