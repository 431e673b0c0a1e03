package routes

import (
	adminapi "paisagem-app/internal/api/admin"
	authapi "paisagem-app/internal/api/auth"
	profilesapi "paisagem-app/internal/api/profiles"
	usersapi "paisagem-app/internal/api/users"
	worksapi "paisagem-app/internal/api/works"
	"paisagem-app/config"
	"paisagem-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	// Provisioning is invoked by the signup flow right after the
	// identity is created, and re-invoked on retry.
	public.POST("/functions/create-profile", profilesapi.CreateProfile)

	if config.GoogleEnabled() {
		public.GET("/auth/google", authapi.GoogleStart)
		public.GET("/auth/google/callback", authapi.GoogleCallback)
	}

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.GET("/dashboard", usersapi.GetDashboard)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/artworks", worksapi.ListOwnArtworks)
	auth.POST("/artworks", worksapi.CreateArtwork)
	auth.PUT("/artworks/:id", worksapi.UpdateArtwork)
	auth.DELETE("/artworks/:id", worksapi.DeleteArtwork)

	// Admin surface. AuthMiddleware only resolves the identity; every
	// handler re-verifies admin status against the profiles table.
	auth.POST("/functions/admin-actions", adminapi.AdminActions)
	auth.GET("/admin/pending-artists", adminapi.ListPendingArtists)
	auth.GET("/admin/pending-artworks", adminapi.ListPendingArtworks)
	auth.POST("/admin/artworks/:id/approve", adminapi.ApproveArtwork)
	auth.POST("/admin/artworks/:id/reject", adminapi.RejectArtwork)
}
