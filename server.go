package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ambershealthcare/placements_backend/billing"
	"github.com/ambershealthcare/placements_backend/config"
	"github.com/ambershealthcare/placements_backend/middlewares"
	"github.com/ambershealthcare/placements_backend/models"
)

const defaultPort = "8080"

func main() {
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable(config.GetDB())

	invoicing, err := billing.NewStripeClientFromEnv()
	if err != nil {
		log.Fatalf("billing client: %v", err)
	}
	if invoicing == nil {
		log.Printf("STRIPE_SECRET_KEY not set; hires will produce draft invoices")
	}

	router := newRouter(invoicing, billing.WebhookSecretFromEnv())

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	log.Printf("server stopped")
}

func newRouter(invoicing billing.InvoicingService, webhookSecret string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middlewares.AuthMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", registerHandler())
		api.POST("/auth/login", loginHandler())
		api.POST("/auth/logout", logoutHandler())
		api.GET("/jobs", openJobsHandler())

		// Reconciliation is signature-authenticated, not token-authenticated.
		api.POST("/stripe/webhook", webhookHandler(webhookSecret))

		authed := api.Group("", middlewares.RequireAuth())
		{
			authed.GET("/me", meHandler())
			authed.GET("/jobs/:id/matches", jobMatchesHandler())

			candidate := authed.Group("", middlewares.RequireRole(models.UserRoleCandidate))
			{
				candidate.POST("/candidates/profile", upsertCandidateProfileHandler())
			}
			authed.GET("/candidates/me", myCandidateProfileHandler())

			employer := authed.Group("", middlewares.RequireRole(models.UserRoleEmployer))
			{
				employer.POST("/employers/profile", upsertEmployerProfileHandler())
				employer.POST("/employers/accept-agreement", acceptAgreementHandler())
				employer.POST("/jobs", createJobHandler())
				employer.POST("/introductions/:id/hire-confirm", confirmHireHandler(invoicing))
			}
			authed.GET("/employers/me", myEmployerProfileHandler())
			authed.GET("/employers/jobs", employerJobsHandler())
			authed.GET("/employers/introductions", employerIntroductionsHandler())
			authed.GET("/employers/invoices", employerInvoicesHandler())

			admin := authed.Group("", middlewares.RequireRole(models.UserRoleAdmin))
			{
				admin.POST("/introductions", createIntroductionHandler())
				admin.GET("/admin/stats", adminStatsHandler())
				admin.GET("/admin/candidates", adminCandidatesHandler())
				admin.GET("/admin/candidates/:id", adminCandidateHandler())
				admin.POST("/admin/introductions/:id/ensure-invoice", ensureInvoiceHandler(invoicing))
			}
		}
	}

	return router
}
