package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/wanfu-temple/temple-api/docs"
	v1 "github.com/wanfu-temple/temple-api/internal/api/handler/v1"
	"github.com/wanfu-temple/temple-api/internal/api/middleware"
	"github.com/wanfu-temple/temple-api/internal/config"
	"github.com/wanfu-temple/temple-api/internal/repository"
	"github.com/wanfu-temple/temple-api/internal/repository/dao"
	"github.com/wanfu-temple/temple-api/internal/service"
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
	registrationHandler := s.initRegistrationHandler(db)
	feedHandler := s.initFeedHandler(db)
	donationHandler := s.initDonationHandler(db, feedHandler)
	adminHandler := s.initAdminHandler(db)
	s.MountHandlers(authHandler, registrationHandler, donationHandler, feedHandler, adminHandler)

	go feedHandler.Run()

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	participantDAO := dao.NewParticipantDAO(db)
	repo := repository.NewParticipantRepository(participantDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewRegistrationService(repo, eventRepo)
	handler := v1.NewRegistrationHandler(svc)

	return handler
}

func (s *Server) initFeedHandler(db *gorm.DB) *v1.FeedHandler {
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewDonationService(
		repository.NewDonationRepository(dao.NewDonationDAO(db)),
		repository.NewParticipantRepository(dao.NewParticipantDAO(db)),
		campaignRepo,
		nil,
	)
	handler := v1.NewFeedHandler(svc)

	return handler
}

func (s *Server) initDonationHandler(db *gorm.DB, publisher *v1.FeedHandler) *v1.DonationHandler {
	repo := repository.NewDonationRepository(dao.NewDonationDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewDonationService(repo, participantRepo, campaignRepo, publisher)
	handler := v1.NewDonationHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewAdminService(participantRepo, eventRepo)
	donationSvc := service.NewDonationService(
		repository.NewDonationRepository(dao.NewDonationDAO(db)),
		participantRepo,
		repository.NewCampaignRepository(dao.NewCampaignDAO(db)),
		nil,
	)
	handler := v1.NewAdminHandler(svc, donationSvc)

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
	registrationHandler *v1.RegistrationHandler,
	donationHandler *v1.DonationHandler,
	feedHandler *v1.FeedHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		public.POST("/registrations", registrationHandler.HandleRegister)
		public.GET("/registrations/:idCard", registrationHandler.HandleLookup)
		public.PUT("/registrations/:idCard", registrationHandler.HandleUpdate)
		public.GET("/registrations/:idCard/family", registrationHandler.HandleFamilyMembers)

		public.POST("/donations", donationHandler.HandleRecordDonation)
		public.POST("/donations/family", donationHandler.HandleFamilyDonation)
		public.GET("/donations/:idCard", donationHandler.HandleDonationsByParticipant)

		public.GET("/campaigns/current", donationHandler.HandleCurrentCampaign)
		public.GET("/campaigns/:campaignID", donationHandler.HandleGetCampaign)
		public.GET("/campaigns/:campaignID/feed", feedHandler.HandleFeed)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireAdmin())
	{
		admin.GET("/participants", adminHandler.HandleListParticipants)
		admin.GET("/participants/export", adminHandler.HandleExportParticipants)
		admin.PATCH("/participants/:idCard", adminHandler.HandleUpdateParticipant)
		admin.DELETE("/participants/:idCard", adminHandler.HandleDeleteParticipant)

		admin.GET("/events", adminHandler.HandleListEvents)
		admin.POST("/events", adminHandler.HandleCreateEvent)

		admin.GET("/campaigns", donationHandler.HandleListCampaigns)
		admin.POST("/campaigns", donationHandler.HandleCreateCampaign)

		admin.GET("/donations", donationHandler.HandleListDonations)
		admin.GET("/donations/export", adminHandler.HandleExportDonations)
		admin.DELETE("/donations/:donationID", donationHandler.HandleDeleteDonation)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Temple Registration API"
	docs.SwaggerInfo.Description = "Event registration and donation tracking for the temple."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
