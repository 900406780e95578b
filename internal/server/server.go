package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/config"
	"github.com/gladgrade/gladgrade-server/internal/handler"
	"github.com/gladgrade/gladgrade-server/internal/middleware"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/ratelimiter"
	"github.com/gladgrade/gladgrade-server/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, meiliClient meilisearch.ServiceManager, imageStorage storage.ImageStorage) *Server {
	userRepo := repository.NewUserRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	educationRepo := repository.NewEducationRepository(db)
	contentRepo := repository.NewContentRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	limiter := ratelimiter.New(redisClient)

	searchSvc := service.NewSearchService(meiliClient)
	if err := searchSvc.InitIndexes(); err != nil {
		log.Printf("search index setup failed: %v", err)
	}

	authSvc := service.NewAuthService(userRepo, pointsRepo, imageStorage)
	ratingSvc := service.NewRatingService(ratingRepo, reviewRepo, imageRepo, pointsRepo, limiter, cfg.RateLimitRating)
	reviewSvc := service.NewReviewService(reviewRepo, ratingRepo, imageRepo)
	imageSvc := service.NewImageService(imageRepo, ratingRepo, reviewRepo, imageStorage)
	businessSvc := service.NewBusinessService(businessRepo, searchSvc)
	surveySvc := service.NewSurveyService(surveyRepo, ratingRepo)
	educationSvc := service.NewEducationService(educationRepo, imageRepo)
	contentSvc := service.NewContentService(contentRepo)
	messageSvc := service.NewMessageService(messageRepo, limiter, cfg.RateLimitMessage)
	adminSvc := service.NewAdminService(userRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	ratingHandler := handler.NewRatingHandler(ratingSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	imageHandler := handler.NewImageHandler(imageSvc)
	businessHandler := handler.NewBusinessHandler(businessSvc)
	surveyHandler := handler.NewSurveyHandler(surveySvc)
	educationHandler := handler.NewEducationHandler(educationSvc)
	contentHandler := handler.NewContentHandler(contentSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(authSvc, cfg.AuthSigningKey, cfg.AuthProjectID)

	api := router.Group("/api")

	// Public routes. Read-only catalog and content surfaces need no token,
	// but a presented one still resolves the actor so owners and staff see
	// what the visibility rules grant them.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/places/:placeId/summary", ratingHandler.PlaceSummary)
		public.GET("/ratings", ratingHandler.List)
		public.GET("/ratings/:id", ratingHandler.GetByID)
		public.GET("/reviews", reviewHandler.List)
		public.GET("/reviews/:id", reviewHandler.GetByID)
		public.GET("/images/:id", imageHandler.GetByID)

		public.GET("/businesses", businessHandler.List)
		public.GET("/businesses/:id", businessHandler.GetByID)
		public.GET("/business-sectors", businessHandler.ListSectors)
		public.GET("/business-types", businessHandler.ListTypes)

		public.GET("/education/areas", educationHandler.ListAreas)
		public.GET("/education/locations", educationHandler.ListLocations)
		public.GET("/education/locations/:id", educationHandler.GetLocation)
		public.GET("/education/locations/:id/summary", ratingHandler.EducationLocationSummary)
		public.GET("/education/locations/:id/dorms", educationHandler.ListDorms)
		public.GET("/education/locations/:id/departments", educationHandler.ListDepartments)
		public.GET("/education/dorms/:id", educationHandler.GetDorm)
		public.GET("/education/departments/:id/professors", educationHandler.ListProfessors)
		public.GET("/education/departments/:id/courses", educationHandler.ListCourses)

		public.GET("/surveys/questions", surveyHandler.ListQuestions)
		public.GET("/faqs", contentHandler.ListFAQs)
		public.GET("/content", contentHandler.ListSiteContents)
		public.GET("/content/:id", contentHandler.GetSiteContent)
		public.GET("/content-categories", contentHandler.ListContentCategories)
		public.GET("/environment-types", contentHandler.ListEnvironmentTypes)
		public.GET("/ads/active", contentHandler.ActiveAds)
	}

	// Token-only routes: a verified identity, account row optional.
	auth := api.Group("/auth")
	auth.Use(authMiddleware.RequireToken())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/guest", authHandler.GuestLogin)
	}

	// Authenticated routes.
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me", authHandler.UpdateProfile)
		protected.POST("/me/avatar", authHandler.UploadAvatar)
		protected.GET("/me/ratings", ratingHandler.MyRatings)
		protected.GET("/me/points", ratingHandler.MyPoints)
		protected.GET("/me/businesses", businessHandler.ListMine)

		protected.POST("/ratings", ratingHandler.Create)
		protected.PUT("/ratings/:id", ratingHandler.Update)
		protected.DELETE("/ratings/:id", ratingHandler.Delete)
		protected.GET("/ratings/:id/survey-answers", surveyHandler.AnswersForRating)

		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		protected.POST("/images", imageHandler.Upload)
		protected.PUT("/images/:id", imageHandler.Update)
		protected.DELETE("/images/:id", imageHandler.Delete)

		protected.POST("/surveys/answers", surveyHandler.SubmitAnswers)
		protected.POST("/messages", messageHandler.Create)

		// Business owners manage their own listings; staff can touch any.
		business := protected.Group("/businesses")
		business.Use(middleware.RequireRoles(model.RoleBusinessOwner, model.RoleAdmin, model.RoleModerator))
		{
			business.POST("", businessHandler.Create)
			business.PUT("/:id", businessHandler.Update)
			business.DELETE("/:id", businessHandler.Delete)
		}

		// Moderation: admins and moderators.
		moderation := protected.Group("")
		moderation.Use(middleware.RequireRoles(model.StaffRoles...))
		{
			moderation.GET("/moderation/images", imageHandler.ListForModeration)
			moderation.PUT("/moderation/images/:id", imageHandler.Moderate)
			moderation.PUT("/businesses/:id/verify", businessHandler.Verify)
		}

		// Content administration: content admins and admins.
		contentAdmin := protected.Group("/admin")
		contentAdmin.Use(middleware.RequireRoles(model.RoleContentAdmin, model.RoleAdmin))
		{
			contentAdmin.POST("/faqs", contentHandler.CreateFAQ)
			contentAdmin.PUT("/faqs/:id", contentHandler.UpdateFAQ)
			contentAdmin.DELETE("/faqs/:id", contentHandler.DeleteFAQ)

			contentAdmin.POST("/content", contentHandler.CreateSiteContent)
			contentAdmin.PUT("/content/:id", contentHandler.UpdateSiteContent)
			contentAdmin.DELETE("/content/:id", contentHandler.DeleteSiteContent)

			contentAdmin.POST("/ads", contentHandler.CreateAd)
			contentAdmin.GET("/ads", contentHandler.ListAds)
			contentAdmin.PUT("/ads/:id", contentHandler.UpdateAd)
			contentAdmin.DELETE("/ads/:id", contentHandler.DeleteAd)

			contentAdmin.POST("/surveys/questions", surveyHandler.CreateQuestion)
			contentAdmin.GET("/surveys/questions/:id", surveyHandler.GetQuestion)
			contentAdmin.PUT("/surveys/questions/:id", surveyHandler.UpdateQuestion)
			contentAdmin.DELETE("/surveys/questions/:id", surveyHandler.DeleteQuestion)

			contentAdmin.POST("/education/areas", educationHandler.CreateArea)
			contentAdmin.POST("/education/locations", educationHandler.CreateLocation)
			contentAdmin.PUT("/education/locations/:id", educationHandler.UpdateLocation)
			contentAdmin.POST("/education/dorms", educationHandler.CreateDorm)
			contentAdmin.PUT("/education/dorms/:id", educationHandler.UpdateDorm)
			contentAdmin.POST("/education/departments", educationHandler.CreateDepartment)
			contentAdmin.POST("/education/professors", educationHandler.CreateProfessor)
			contentAdmin.POST("/education/courses", educationHandler.CreateCourse)

			contentAdmin.POST("/business-sectors", businessHandler.CreateSector)
			contentAdmin.POST("/business-types", businessHandler.CreateType)
		}

		// User administration: admins only.
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRoles(model.RoleAdmin))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.POST("/users/:id/roles", adminHandler.AddSecondaryRole)
			admin.DELETE("/users/:id/roles/:role", adminHandler.RemoveSecondaryRole)
			admin.GET("/activity", adminHandler.ListActivity)

			admin.GET("/messages", messageHandler.List)
			admin.GET("/messages/:id", messageHandler.GetByID)
			admin.PUT("/messages/:id/read", messageHandler.MarkRead)
			admin.PUT("/messages/:id/reply", messageHandler.Reply)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
