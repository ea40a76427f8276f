package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mockdrill/mockdrill-backend/internal/middleware"
	"github.com/mockdrill/mockdrill-backend/internal/response"
	"github.com/mockdrill/mockdrill-backend/internal/service"
	ws "github.com/mockdrill/mockdrill-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the attempt WebSocket stream: low-latency autosaves
// during an attempt plus submission without a second round trip.
type WSHandler struct {
	attemptService *service.AttemptService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(attemptService *service.AttemptService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		attemptService: attemptService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// AttemptStream godoc
// WS /ws/v1/attempts/:id/stream?token=
func (h *WSHandler) AttemptStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Ownership is checked before the upgrade so a stranger gets a plain
	// HTTP error, not an open socket.
	if _, err := h.attemptService.GetOwned(c.Request.Context(), attemptID, claims.UserID); err != nil {
		if errors.Is(err, service.ErrNotAttemptOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrNotAttemptOwner)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	studentID := claims.UserID

	wsLog := h.log.With().
		Int("student_id", studentID).
		Str("attempt_id", attemptID.String()).
		Logger()

	wsLog.Info().Msg("Student connected")

	for {
		var msg ws.Request
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionAutosave:
			h.handleAutosave(c, conn, attemptID, studentID, &msg)
		case ws.ActionSubmit:
			if h.handleSubmit(c, conn, wsLog, attemptID, studentID) {
				return
			}
		case ws.ActionPing:
			_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			_ = ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) handleAutosave(c *gin.Context, conn *websocket.Conn, attemptID uuid.UUID, studentID int, msg *ws.Request) {
	questionID, err := uuid.Parse(msg.QuestionID)
	if err != nil {
		_ = ws.WriteError(conn, "invalid question_id")
		return
	}

	err = h.attemptService.SaveAnswer(c.Request.Context(), attemptID, studentID, questionID, msg.Selected)
	if err != nil {
		_ = ws.WriteError(conn, wsErrMessage(err))
		return
	}
	_ = ws.WriteTyped(conn, ws.SavedResponse{Event: ws.EventSaved, Status: "saved"})
}

// handleSubmit grades the attempt and reports whether the connection
// should close.
func (h *WSHandler) handleSubmit(c *gin.Context, conn *websocket.Conn, wsLog zerolog.Logger, attemptID uuid.UUID, studentID int) bool {
	result, err := h.attemptService.Submit(c.Request.Context(), attemptID, studentID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Submit failed")
		_ = ws.WriteError(conn, wsErrMessage(err))
		return false
	}

	wsLog.Info().Msg("Attempt submitted over WebSocket")
	_ = ws.WriteTyped(conn, ws.SubmittedResponse{Event: ws.EventSubmitted, Result: result})
	return true
}

// wsErrMessage keeps internal errors off the wire; known sentinels pass
// through verbatim.
func wsErrMessage(err error) string {
	for _, sentinel := range []error{
		service.ErrAttemptNotActive,
		service.ErrNotAttemptOwner,
		service.ErrTimeElapsed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "request failed"
}
