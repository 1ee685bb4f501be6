package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/collegehub/collegehub-api/docs"
	v1 "github.com/collegehub/collegehub-api/internal/api/handler/v1"
	"github.com/collegehub/collegehub-api/internal/api/middleware"
	"github.com/collegehub/collegehub-api/internal/config"
	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository"
	"github.com/collegehub/collegehub-api/internal/repository/dao"
	"github.com/collegehub/collegehub-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	participationHandler := s.initParticipationHandler(db)
	departmentHandler := s.initDepartmentHandler(db)
	taskHandler := s.initTaskHandler(db)
	statsHandler := s.initStatsHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, participationHandler, departmentHandler, taskHandler, statsHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	departmentRepo := repository.NewDepartmentRepository(dao.NewDepartmentDAO(db))
	svc := service.NewEventService(repo, departmentRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc)

	return handler
}

func (s *Server) initParticipationHandler(db *gorm.DB) *v1.ParticipationHandler {
	participationDAO := dao.NewParticipationDAO(db)
	repo := repository.NewParticipationRepository(participationDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewParticipationService(repo, eventRepo, userRepo, service.NewLogMailer())
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewParticipationHandler(svc, uSvc)

	return handler
}

func (s *Server) initDepartmentHandler(db *gorm.DB) *v1.DepartmentHandler {
	departmentDAO := dao.NewDepartmentDAO(db)
	repo := repository.NewDepartmentRepository(departmentDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewDepartmentService(repo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewDepartmentHandler(svc, uSvc)

	return handler
}

func (s *Server) initTaskHandler(db *gorm.DB) *v1.TaskHandler {
	taskDAO := dao.NewTaskDAO(db)
	repo := repository.NewTaskRepository(taskDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTaskService(repo, eventRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewTaskHandler(svc, uSvc)

	return handler
}

func (s *Server) initStatsHandler(db *gorm.DB) *v1.StatsHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	participationRepo := repository.NewParticipationRepository(dao.NewParticipationDAO(db))
	svc := service.NewStatsService(eventRepo, userRepo, participationRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewStatsHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	participationHandler *v1.ParticipationHandler,
	departmentHandler *v1.DepartmentHandler,
	taskHandler *v1.TaskHandler,
	statsHandler *v1.StatsHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/profile", userHandler.HandleGetProfile)
		users.PUT("/profile", userHandler.HandleUpdateProfile)
		users.PUT("/profile/password", userHandler.HandleChangePassword)
		users.GET("/users", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), userHandler.HandleListUsers)
		users.POST("/users", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), userHandler.HandleCreateUser)
		users.GET("/users/:userID", userHandler.HandleGetUser)
		users.DELETE("/users/:userID", middleware.RequireRoles(domain.RoleAdmin), userHandler.HandleDeleteUser)
		users.GET("/users/:userID/tasks", taskHandler.HandleListUserTasks)
	}

	events := s.Router.Group(basePath, verifyJWT)
	{
		events.GET("/events", eventHandler.HandleListEvents)
		events.GET("/events/pending", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), eventHandler.HandleListPendingEvents)
		events.GET("/events/:eventID", eventHandler.HandleGetEvent)
		events.POST("/events", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), eventHandler.HandleCreateEvent)
		events.PUT("/events/:eventID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), eventHandler.HandleDeleteEvent)
		events.PUT("/events/:eventID/status", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD), eventHandler.HandleChangeEventStatus)

		events.GET("/events/:eventID/participations", participationHandler.HandleListByEvent)
		events.POST("/events/:eventID/attendance", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD, domain.RoleFaculty), participationHandler.HandleSetAttendance)
		events.GET("/events/:eventID/attendance/report", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD, domain.RoleFaculty), participationHandler.HandleAttendanceReport)
	}

	participations := s.Router.Group(basePath, verifyJWT)
	{
		participations.POST("/participations", participationHandler.HandleRegister)
		participations.DELETE("/participations/:participationID", participationHandler.HandleUnregister)
		participations.GET("/students/:studentID/participations", participationHandler.HandleListByStudent)
	}

	departments := s.Router.Group(basePath, verifyJWT)
	{
		departments.GET("/departments", departmentHandler.HandleListDepartments)
		departments.GET("/departments/:departmentID", departmentHandler.HandleGetDepartment)
		departments.POST("/departments", middleware.RequireRoles(domain.RoleAdmin), departmentHandler.HandleCreateDepartment)
		departments.PUT("/departments/:departmentID", middleware.RequireRoles(domain.RoleAdmin), departmentHandler.HandleUpdateDepartment)
		departments.DELETE("/departments/:departmentID", middleware.RequireRoles(domain.RoleAdmin), departmentHandler.HandleDeleteDepartment)
	}

	tasks := s.Router.Group(basePath, verifyJWT)
	{
		tasks.GET("/tasks", taskHandler.HandleListTasks)
		tasks.GET("/tasks/:taskID", taskHandler.HandleGetTask)
		tasks.POST("/tasks", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), taskHandler.HandleCreateTask)
		tasks.PUT("/tasks/:taskID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), taskHandler.HandleUpdateTask)
		tasks.PUT("/tasks/:taskID/status", taskHandler.HandleSetTaskStatus)
		tasks.DELETE("/tasks/:taskID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFaculty), taskHandler.HandleDeleteTask)
	}

	stats := s.Router.Group(basePath, verifyJWT)
	{
		stats.GET("/stats/overview", middleware.RequireRoles(domain.RoleAdmin, domain.RoleHOD, domain.RoleFaculty), statsHandler.HandleGetOverview)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "CollegeHub API"
	docs.SwaggerInfo.Description = "REST API for college event and department management."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
