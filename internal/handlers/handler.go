package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Ravindra230104/EduGather-server/internal/chat"
	"github.com/Ravindra230104/EduGather-server/internal/config"
	"github.com/Ravindra230104/EduGather-server/internal/services"
	"github.com/Ravindra230104/EduGather-server/internal/token"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type Handler struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *gorm.DB
	tokens     *token.Service
	auth       *services.AuthService
	categories *services.CategoryService
	links      *services.LinkService
	users      *services.UserService
	hub        *chat.Hub
	upgrader   websocket.Upgrader
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	tokens *token.Service,
	auth *services.AuthService,
	categories *services.CategoryService,
	links *services.LinkService,
	users *services.UserService,
	hub *chat.Hub,
) *Handler {
	return &Handler{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		tokens:     tokens,
		auth:       auth,
		categories: categories,
		links:      links,
		users:      users,
		hub:        hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == cfg.ClientURL
			},
		},
	}
}
