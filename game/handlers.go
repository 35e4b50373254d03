package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quizapi/domain"
	"quizapi/pack"
)

// PasswordHasher turns a plaintext game password into its stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// SessionDefaults are the server-wide rules applied to every new session.
type SessionDefaults struct {
	MinPlayers     int
	MaxPlayers     int
	ButtonBlocking time.Duration
	Thinking       time.Duration
	AutoStart      time.Duration
	UsePingPenalty bool
	ReadingSpeed   int
}

type Handler struct {
	manager  *Manager
	hasher   PasswordHasher
	defaults SessionDefaults
}

func NewHandler(manager *Manager, hasher PasswordHasher, defaults SessionDefaults) *Handler {
	return &Handler{manager: manager, hasher: hasher, defaults: defaults}
}

type createSessionRequest struct {
	Name     string          `json:"name" binding:"required"`
	Password string          `json:"password"`
	Package  json.RawMessage `json:"package" binding:"required"`

	Oral             bool `json:"oral"`
	Managed          bool `json:"managed"`
	Automatic        bool `json:"automatic"`
	UsePingPenalty   bool `json:"usePingPenalty"`
	FalseStart       bool `json:"falseStart"`
	AllowAppellation bool `json:"allowAppellation"`
	Tables           int  `json:"tables"`
}

// CreateSessionHandler registers a new game session for the authenticated
// user and returns its id.
func (h *Handler) CreateSessionHandler(ctx *gin.Context) {
	id := ctx.GetString("id")

	if id == "" {
		slog.Error("Unexpected error, id not found. What is the middleware doing?",
			"ip", ctx.ClientIP(),
			"user_agent", ctx.Request.UserAgent(),
		)

		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}

	req := createSessionRequest{}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-configs"})
		return
	}

	pkg, err := pack.Load(bytes.NewReader(req.Package))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-package"})
		return
	}

	passwordHash := ""
	if req.Password != "" {
		passwordHash, err = h.hasher.Hash(req.Password)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
			return
		}
	}

	settings := Settings{
		Name:             req.Name,
		PasswordHash:     passwordHash,
		Tables:           req.Tables,
		MinPlayers:       h.defaults.MinPlayers,
		MaxPlayers:       h.defaults.MaxPlayers,
		Oral:             req.Oral,
		Managed:          req.Managed,
		Automatic:        req.Automatic,
		UsePingPenalty:   req.UsePingPenalty || h.defaults.UsePingPenalty,
		FalseStart:       req.FalseStart,
		AllowAppellation: req.AllowAppellation,
		ReadingSpeed:     h.defaults.ReadingSpeed,
		ButtonBlocking:   h.defaults.ButtonBlocking,
		Thinking:         h.defaults.Thinking,
		AutoStart:        h.defaults.AutoStart,
	}

	session := h.manager.Create(settings, pkg)

	ctx.JSON(http.StatusCreated, gin.H{"id": session.Id()})
}

// ListSessionsHandler returns the lobby cards of every live session.
func (h *Handler) ListSessionsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"sessions": h.manager.Descriptions()})
}

// JoinSessionHandler upgrades to a websocket and seats the participant.
// Join refusals are delivered over the socket as a REFUSE line so the
// client always gets a reason.
func (h *Handler) JoinSessionHandler(ctx *gin.Context) {
	session, err := h.manager.Get(ctx.Param("id"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	name := ctx.Query("name")
	if name == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name-required"})
		return
	}

	role, ok := ParseRole(ctx.Query("role"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown-role"})
		return
	}

	isMale := ctx.Query("sex") != "f"
	password := ctx.Query("password")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Error("WS upgrade failed", "error", err)
		return
	}

	socket := NewWebsocketConnection(conn)
	player := newPlayerConn(name, session, socket)

	// The outbox must be attached before Join so the ACCEPTED line and
	// the roster snapshot are not lost.
	session.Attach(name, player)

	if err := session.Join(name, isMale, role, password); err != nil {
		session.Detach(name)

		reason := "unknown-error"

		for _, known := range []error{
			domain.ErrWrongPassword,
			domain.ErrNameTaken,
			domain.ErrNoFreePlace,
			domain.ErrPlaceIsOccupied,
			domain.ErrSessionNotFound,
		} {
			if errors.Is(err, known) {
				reason = known.Error()
				break
			}
		}

		socket.Write(MsgRefuse + ArgsSeparator + reason)
		socket.Close(reason)
		return
	}

	go player.writePump()
	go player.readPump()
}
