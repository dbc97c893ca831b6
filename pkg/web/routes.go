// Package web provides API routes for the web server.
package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	s.GET("/", dashboardHandler)

	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/warnings", warningsHandler)
		api.GET("/logs", logsHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// warningsHandler returns the users with the most active warnings
func warningsHandler(c *gin.Context) {
	svc := moderation.Get()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "El servicio de moderación no está inicializado.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"warnings": svc.Ledger.Top(20),
	})
}

// logsHandler returns the most recent moderation log entries
func logsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"logs": audit.Get().Recent(50),
	})
}

// dashboardHandler renders a minimal moderation dashboard
func dashboardHandler(c *gin.Context) {
	svc := moderation.Get()

	var rows strings.Builder
	if svc != nil {
		for _, record := range svc.Ledger.Top(20) {
			rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%d</td></tr>",
				record.GuildID, record.UserID, record.Count))
		}
	}

	var logLines strings.Builder
	for _, line := range audit.Get().Recent(50) {
		logLines.WriteString("<li>" + line + "</li>")
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>PancyGuard - Panel</title></head>
<body>
<h1>🛡️ PancyGuard</h1>
<h2>Usuarios con más advertencias</h2>
<table border="1"><tr><th>Servidor</th><th>Usuario</th><th>Advertencias</th></tr>%s</table>
<h2>Registro de moderación</h2>
<ul>%s</ul>
</body>
</html>`, rows.String(), logLines.String())

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
