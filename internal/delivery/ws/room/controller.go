package ws_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/pokerdeck/core/internal/delivery/http/common"
	session_service "github.com/pokerdeck/core/internal/service/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Controller struct {
	hub      *Hub
	sessions *session_service.Service
	logger   *slog.Logger
}

func NewController(hub *Hub, sessions *session_service.Service) *Controller {
	return &Controller{
		hub:      hub,
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms/:room_code/ws", c.subscribe)
}

// subscribe upgrades the connection after binding it to a participant
// identity. A session for another room, or for a participant the room
// does not list, is rejected before the upgrade.
func (c *Controller) subscribe(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		token = ctx.GetHeader("X-session-token")
	}
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "session token required",
		})
		return
	}

	session, err := c.sessions.Resolve(token)
	if err != nil {
		if errors.Is(err, session_service.ErrNoSession) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "unknown session",
			})
			return
		}
		c.logger.Error("failed to resolve session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	code := ctx.Param("room_code")
	room, ok := c.hub.rooms.FindRoom(code)
	if !ok {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
		return
	}
	if room.Code() != session.RoomCode || !room.HasParticipant(session.ParticipantID) {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "not a participant of this room",
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:           c.hub,
		conn:          conn,
		send:          make(chan Event, 8),
		roomCode:      room.Code(),
		participantID: session.ParticipantID,
	}

	c.hub.register <- client

	go client.writePump()
	go client.readPump()
}
