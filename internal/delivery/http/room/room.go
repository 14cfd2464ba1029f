package http_room

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/pokerdeck/core/internal/delivery/http/common"
	ws_room "github.com/pokerdeck/core/internal/delivery/ws/room"
	session_service "github.com/pokerdeck/core/internal/service/session"
	store_room "github.com/pokerdeck/core/internal/store/room"
)

const sessionHeader = "X-session-token"

type Controller struct {
	rooms    *store_room.Store
	sessions *session_service.Service
	logger   *slog.Logger
}

func New(rooms *store_room.Store, sessions *session_service.Service) *Controller {
	return &Controller{
		rooms:    rooms,
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.POST("/:room_code/join", c.join)
		rooms.GET("/:room_code", c.state)
	}
}

type CreateRoomRequestDTO struct {
	Name string `json:"name" binding:"required"`
}

type RoomSessionResponseDTO struct {
	RoomCode      string `json:"room_code"`
	ParticipantID string `json:"participant_id"`
	IsAdmin       bool   `json:"is_admin"`
}

// create books a new room with the caller as admin and issues the
// session token the realtime subscription will present later.
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, adminID := c.rooms.CreateRoom(req.Name)

	token, err := c.sessions.Issue(session_service.Session{
		RoomCode:      room.Code(),
		ParticipantID: adminID,
		Name:          req.Name,
		IsAdmin:       true,
	})
	if err != nil {
		c.logger.Error("failed to issue session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header(sessionHeader, token)
	ctx.JSON(http.StatusCreated, RoomSessionResponseDTO{
		RoomCode:      room.Code(),
		ParticipantID: adminID,
		IsAdmin:       true,
	})
}

type JoinRoomRequestDTO struct {
	Name string `json:"name" binding:"required"`
}

func (c *Controller) join(ctx *gin.Context) {
	code := ctx.Param("room_code")

	var req JoinRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, participantID, err := c.rooms.JoinRoom(code, req.Name)
	if err != nil {
		if errors.Is(err, store_room.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to join room", slog.String("room_code", code), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	token, err := c.sessions.Issue(session_service.Session{
		RoomCode:      room.Code(),
		ParticipantID: participantID,
		Name:          req.Name,
		IsAdmin:       false,
	})
	if err != nil {
		c.logger.Error("failed to issue session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Header(sessionHeader, token)
	ctx.JSON(http.StatusCreated, RoomSessionResponseDTO{
		RoomCode:      room.Code(),
		ParticipantID: participantID,
		IsAdmin:       false,
	})
}

// state serves the initial render before the realtime subscription is
// up. Same payload the hub broadcasts.
func (c *Controller) state(ctx *gin.Context) {
	code := ctx.Param("room_code")

	token := ctx.GetHeader(sessionHeader)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: sessionHeader + " not found",
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

	if !strings.EqualFold(session.RoomCode, code) {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
			Message: "session belongs to another room",
		})
		return
	}

	state, err := c.rooms.StateByCode(code)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
		return
	}

	ctx.JSON(http.StatusOK, ws_room.NewStatePayload(state))
}
