package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collegehub/collegehub-api/internal/api/handler/v1/request"
	"github.com/collegehub/collegehub-api/internal/api/handler/v1/response"
	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/service"
)

type TaskService interface {
	CreateTask(ctx context.Context, actor domain.User, task domain.Task) (domain.Task, error)
	GetTask(ctx context.Context, id uint) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListMyTasks(ctx context.Context, actor domain.User, userID uint) ([]domain.Task, error)
	UpdateTask(ctx context.Context, actor domain.User, task domain.Task) (domain.Task, error)
	SetStatus(ctx context.Context, actor domain.User, id uint, status domain.TaskStatus) (domain.Task, error)
	DeleteTask(ctx context.Context, actor domain.User, id uint) error
}

type TaskHandler struct {
	svc  TaskService
	uSvc UserService
}

func NewTaskHandler(svc TaskService, uSvc UserService) *TaskHandler {
	return &TaskHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateTask godoc
// @Summary      Create a volunteer task for an event (faculty and admin)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTaskRequest  true  "task details"
// @Success      201    {object}  domain.Task
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tasks [post]
// @Security BearerAuth
func (h *TaskHandler) HandleCreateTask(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid due date format: %v", err)))

		return
	}

	task := domain.Task{
		Title:       input.Title,
		Description: input.Description,
		EventID:     input.EventID,
		AssignedTo:  input.AssignedTo,
		DueDate:     dueDate,
		Status:      domain.TaskStatus(input.Status),
	}

	created, err := h.svc.CreateTask(ctx.Request.Context(), actor, task)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", input.EventID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", input.AssignedTo))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleCreateTask -> h.svc.CreateTask -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetTask godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        taskID  path      int  true  "task ID"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tasks/{taskID} [get]
// @Security BearerAuth
func (h *TaskHandler) HandleGetTask(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	task, err := h.svc.GetTask(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("task", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetTask -> h.svc.GetTask -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, task)
}

// HandleListTasks godoc
// @Summary      List all tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   domain.Task
// @Failure      500  {object}  response.Err
// @Router       /tasks [get]
// @Security BearerAuth
func (h *TaskHandler) HandleListTasks(ctx *gin.Context) {
	tasks, err := h.svc.ListTasks(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTasks -> h.svc.ListTasks -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// HandleListUserTasks godoc
// @Summary      List tasks assigned to a user
// @Tags         tasks
// @Produce      json
// @Param        userID  path      int  true  "user ID"
// @Success      200  {array}   domain.Task
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/tasks [get]
// @Security BearerAuth
func (h *TaskHandler) HandleListUserTasks(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tasks, err := h.svc.ListMyTasks(ctx.Request.Context(), actor, userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))

			return
		}

		err = fmt.Errorf("v1.HandleListUserTasks -> h.svc.ListMyTasks -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// HandleUpdateTask godoc
// @Summary      Update a task (admin or the creating faculty)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskID  path      int  true  "task ID"
// @Param        input   body      request.UpdateTaskRequest  true  "task details"
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /tasks/{taskID} [put]
// @Security BearerAuth
func (h *TaskHandler) HandleUpdateTask(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.UpdateTaskRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid due date format: %v", err)))

		return
	}

	task := domain.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		DueDate:     dueDate,
		Status:      domain.TaskStatus(input.Status),
	}

	updated, err := h.svc.UpdateTask(ctx.Request.Context(), actor, task)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.RenderErr(ctx, response.ErrNotFound("task", "ID", id))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", input.AssignedTo))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleUpdateTask -> h.svc.UpdateTask -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleSetTaskStatus godoc
// @Summary      Update a task's status (manager or assignee)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskID  path      int  true  "task ID"
// @Param        input   body      request.SetTaskStatusRequest  true  "target status"
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /tasks/{taskID}/status [put]
// @Security BearerAuth
func (h *TaskHandler) HandleSetTaskStatus(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.SetTaskStatusRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	task, err := h.svc.SetStatus(ctx.Request.Context(), actor, id, domain.TaskStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.RenderErr(ctx, response.ErrNotFound("task", "ID", id))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		case errors.Is(err, service.ErrInvalidTaskStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidTaskStatus))
		default:
			err = fmt.Errorf("v1.HandleSetTaskStatus -> h.svc.SetStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, task)
}

// HandleDeleteTask godoc
// @Summary      Delete a task (admin or the creating faculty)
// @Tags         tasks
// @Produce      json
// @Param        taskID  path      int  true  "task ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tasks/{taskID} [delete]
// @Security BearerAuth
func (h *TaskHandler) HandleDeleteTask(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "taskID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteTask(ctx.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			response.RenderErr(ctx, response.ErrNotFound("task", "ID", id))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleDeleteTask -> h.svc.DeleteTask -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "task deleted successfully"})
}
