package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miuye256/restaurant-chatbot-backend/internal/config"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/routes/v1/chat"
)

type V1Route struct {
	chat *chat.ChatRoute
}

func NewV1Route(
	chat *chat.ChatRoute,
) *V1Route {
	return &V1Route{
		chat,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	v1Route.chat.RegisterRouter(v1Router)
}

// GetVersion returns the current build version of the API server and
// environment reload timestamp.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz returns the health status of the API server.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz returns the readiness status of the API server.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
