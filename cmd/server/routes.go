package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/interfaces/http/handlers"
	"cred-vault.backend/pkg/metrics"
)

type routeDeps struct {
	userHandler        *handlers.UserHandler
	credentialHandler  *handlers.CredentialHandler
	shareHandler       *handlers.ShareHandler
	ekycHandler        *handlers.EkycHandler
	auditHandler       *handlers.AuditHandler
	identityMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine, m *metrics.Metrics) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// User routes. Register is called by the identity service; the rest
		// require a resolved caller.
		users := v1.Group("/users")
		{
			users.POST("", d.userHandler.Register)
			users.GET("/:id", d.identityMiddleware, d.userHandler.Get)
			users.POST("/:id/deactivate", d.identityMiddleware, d.userHandler.Deactivate)
			users.DELETE("/:id", d.identityMiddleware, d.userHandler.Delete)
		}

		// Credential routes (protected)
		credentials := v1.Group("/credentials")
		credentials.Use(d.identityMiddleware)
		{
			credentials.POST("", d.credentialHandler.Create)
			credentials.GET("", d.credentialHandler.List)
			credentials.GET("/:id", d.credentialHandler.Get)
			credentials.PUT("/:id", d.credentialHandler.Update)
			credentials.DELETE("/:id", d.credentialHandler.Delete)

			// Shares live under their credential
			credentials.POST("/:id/shares", d.shareHandler.Grant)
			credentials.GET("/:id/shares", d.shareHandler.List)
			credentials.DELETE("/:id/shares/:granteeId", d.shareHandler.Revoke)
		}

		// eKYC routes (protected)
		ekyc := v1.Group("/ekyc")
		ekyc.Use(d.identityMiddleware)
		{
			ekyc.POST("/sessions", d.ekycHandler.Start)
			ekyc.GET("/sessions/latest", d.ekycHandler.GetLatest)
		}

		// Provider callback (internal surface, no caller identity)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/ekyc/sessions/:id/result", d.ekycHandler.RecordResult)
		}

		// Audit routes (protected)
		audit := v1.Group("/audit")
		audit.Use(d.identityMiddleware)
		{
			audit.POST("", d.auditHandler.Append)
			audit.GET("", d.auditHandler.Query)
		}
	}
}
