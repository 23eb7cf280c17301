package handlers

import (
	"context"
	"net/http"
	"time"

	"fieldmate/internal/events"
	"fieldmate/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type EventsHandler struct {
	hub      *events.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewEventsHandler(hub *events.Hub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS middleware and the bearer token.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Stream godoc
// @Summary      Stream change events of a company over a websocket
// @Tags         events
// @Security     BearerAuth
// @Param        companyId     path   int     true   "Company ID"
// @Param        access_token  query  string  false  "Access token when headers cannot be set"
// @Success      101
// @Failure      403  {object}  response.Body
// @Router       /company/{companyId}/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	if companyID != a.CompanyID {
		response.Error(c, http.StatusForbidden, "forbidden")
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client sends nothing but control frames; reading keeps pongs flowing
	// and notices when it goes away.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := h.hub.Subscribe(ctx, companyID)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
