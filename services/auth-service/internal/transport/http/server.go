package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/db"
	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/service"
)

type Server struct {
	svc *service.AuthSvc
	gdb *gorm.DB
}

func NewServer(svc *service.AuthSvc, gdb *gorm.DB) *Server {
	return &Server{svc: svc, gdb: gdb}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/health", s.health)
	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.GET("/me", JWTAuth(), s.me)
	return r
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Render(c, httperr.Validation("invalid request body"))
		return
	}
	u, err := s.svc.Register(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created", "user": gin.H{"username": u.Username}})
}

func (s *Server) login(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Render(c, httperr.Validation("invalid request body"))
		return
	}
	u, access, refresh, err := s.svc.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          gin.H{"username": u.Username},
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (s *Server) me(c *gin.Context) {
	username, _ := c.Get("username")
	c.JSON(http.StatusOK, gin.H{"username": username})
}

func (s *Server) health(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), s.gdb); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
