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

type ParticipationService interface {
	Register(ctx context.Context, eventID, studentID uint) (domain.Participation, error)
	Unregister(ctx context.Context, actor domain.User, id uint) error
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Participation, error)
	ListByStudent(ctx context.Context, actor domain.User, studentID uint) ([]domain.Participation, error)
	SetAttendance(ctx context.Context, actor domain.User, eventID uint, attendance map[uint]bool) (service.AttendanceResult, error)
	AttendanceReport(ctx context.Context, actor domain.User, eventID uint) ([]byte, error)
}

type ParticipationHandler struct {
	svc  ParticipationService
	uSvc UserService
}

func NewParticipationHandler(svc ParticipationService, uSvc UserService) *ParticipationHandler {
	return &ParticipationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleRegister godoc
// @Summary      Register a student for an approved event
// @Tags         participations
// @Accept       json
// @Produce      json
// @Param        input  body      request.RegisterParticipationRequest  true  "registration details"
// @Success      201    {object}  domain.Participation
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /participations [post]
// @Security BearerAuth
func (h *ParticipationHandler) HandleRegister(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.RegisterParticipationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// Students always register themselves. Staff may register on behalf.
	studentID := input.StudentID
	if actor.Role == domain.RoleStudent {
		studentID = actor.ID
	}
	if studentID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("student_id is required")))

		return
	}

	participation, err := h.svc.Register(ctx.Request.Context(), input.EventID, studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", input.EventID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", studentID))
		case errors.Is(err, service.ErrEventNotApproved):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventNotApproved))
		case errors.Is(err, service.ErrNotAStudent):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotAStudent))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrCapacityExceeded(service.ErrEventFull))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, participation)
}

// HandleUnregister godoc
// @Summary      Cancel a registration
// @Tags         participations
// @Produce      json
// @Param        participationID  path      int  true  "participation ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participations/{participationID} [delete]
// @Security BearerAuth
func (h *ParticipationHandler) HandleUnregister(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "participationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Unregister(ctx.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participation", "ID", id))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleUnregister -> h.svc.Unregister -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "registration cancelled successfully"})
}

// HandleListByEvent godoc
// @Summary      List participations for an event
// @Tags         participations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {array}   domain.Participation
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/participations [get]
// @Security BearerAuth
func (h *ParticipationHandler) HandleListByEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participations, err := h.svc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}

		err = fmt.Errorf("v1.HandleListByEvent -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, participations)
}

// HandleListByStudent godoc
// @Summary      List a student's registrations
// @Tags         participations
// @Produce      json
// @Param        studentID  path      int  true  "student ID"
// @Success      200  {array}   domain.Participation
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /students/{studentID}/participations [get]
// @Security BearerAuth
func (h *ParticipationHandler) HandleListByStudent(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	studentID, err := parseIDParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	participations, err := h.svc.ListByStudent(ctx.Request.Context(), actor, studentID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))

			return
		}

		err = fmt.Errorf("v1.HandleListByStudent -> h.svc.ListByStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, participations)
}

// HandleSetAttendance godoc
// @Summary      Record attendance for an event in one batch
// @Tags         participations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        input    body      request.SetAttendanceRequest  true  "participation ID to presence map"
// @Success      200      {object}  service.AttendanceResult
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/attendance [post]
// @Security BearerAuth
func (h *ParticipationHandler) HandleSetAttendance(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var input request.SetAttendanceRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.svc.SetAttendance(ctx.Request.Context(), actor, eventID, input.Attendance)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleSetAttendance -> h.svc.SetAttendance -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleAttendanceReport godoc
// @Summary      Download an event's attendance report as CSV
// @Tags         participations
// @Produce      text/csv
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {string}  string  "CSV file"
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/attendance/report [get]
// @Security BearerAuth
func (h *ParticipationHandler) HandleAttendanceReport(ctx *gin.Context) {
	actor, respErr := getActorFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	report, err := h.svc.AttendanceReport(ctx.Request.Context(), actor, eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrForbidden))
		default:
			err = fmt.Errorf("v1.HandleAttendanceReport -> h.svc.AttendanceReport -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-event-%v.csv"`, eventID))
	ctx.Data(http.StatusOK, "text/csv", report)
}
