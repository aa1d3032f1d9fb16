package http

import (
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/devconnector-profile/pkg/auth"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

type Router struct {
	profileHandler *ProfileHandler
	healthHandler  *HealthHandler
	jwtSvc         *auth.JWTService
	logger         logger.Logger
}

func NewRouter(profileHandler *ProfileHandler, healthHandler *HealthHandler, jwtSvc *auth.JWTService, log logger.Logger) *Router {
	return &Router{
		profileHandler: profileHandler,
		healthHandler:  healthHandler,
		jwtSvc:         jwtSvc,
		logger:         log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(r.logger), ErrorMiddleware(r.logger))

	authMiddleware := AuthMiddleware(r.jwtSvc, r.logger)

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Health)

		profile := api.Group("/profile")
		{
			// Public routes
			profile.GET("", r.profileHandler.ListProfiles)
			profile.GET("/user/:user_id", r.profileHandler.GetProfileByUser)
			profile.GET("/github/:username", r.profileHandler.GetGithubRepos)

			// Owner routes
			private := profile.Group("")
			private.Use(authMiddleware)
			{
				private.GET("/me", r.profileHandler.GetMyProfile)
				private.POST("", r.profileHandler.UpsertProfile)
				private.DELETE("", r.profileHandler.DeleteAccount)

				private.PUT("/experience", r.profileHandler.AddExperience)
				private.DELETE("/experience/:exp_id", r.profileHandler.RemoveExperience)

				private.PUT("/education", r.profileHandler.AddEducation)
				private.DELETE("/education/:edu_id", r.profileHandler.RemoveEducation)
			}
		}
	}

	return router
}
