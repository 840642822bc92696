package api

import (
	"errors"
	"net/http"

	"chkobba-service/internal/service"
	"chkobba-service/internal/ws"
	appErr "chkobba-service/pkg/errors"
	"chkobba-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container, wsHandler *ws.Handler) {
	handler := &Handler{services: services}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/chkobba/v1")
	{
		v1.GET("/rooms/:code", handler.GetRoomLobby)
		v1.GET("/ws", wsHandler.HandleWS)
	}
}

// GetRoomLobby serves the public lobby snapshot, so a client can inspect a
// room before joining. No hidden information is exposed here.
func (h *Handler) GetRoomLobby(c *gin.Context) {
	code := ws.NormalizeRoomCode(c.Param("code"))
	room, err := h.services.Game.GetRoom(code)
	if err != nil {
		if errors.Is(err, appErr.ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	response.Success(c, room.LobbyState())
}
