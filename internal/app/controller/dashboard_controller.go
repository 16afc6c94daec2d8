package controller

import (
	"net/http"

	"github.com/beautique/beautique-backend/internal/middleware"
	"github.com/beautique/beautique-backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer; admin routes also require a token
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type DashboardController struct {
	hub *ws.Hub
}

func NewDashboardController(hub *ws.Hub) *DashboardController {
	return &DashboardController{
		hub: hub,
	}
}

// Feed upgrades the connection and streams order events to the admin
// dashboard. Auth middleware runs first; browsers cannot set headers on
// websocket requests so the token arrives as a query parameter.
// GET /api/v1/admin/dashboard/feed?token=...
func (ctrl *DashboardController) Feed(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := dashboardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade dashboard connection", err, map[string]interface{}{
			"admin_id": adminID,
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, adminID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
