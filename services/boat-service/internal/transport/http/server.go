package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/db"
	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/service"
)

type Server struct {
	svc *service.BoatSvc
	gdb *gorm.DB
}

func NewServer(svc *service.BoatSvc, gdb *gorm.DB) *Server {
	return &Server{svc: svc, gdb: gdb}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/health", s.health)
	r.GET("/boats", s.list)
	r.GET("/boats/:id", s.get)
	r.GET("/boats/:id/availability", s.availability)
	r.POST("/reservations", s.reserve)
	return r
}

func (s *Server) list(c *gin.Context) {
	boats, err := s.svc.List(c.Request.Context())
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, boats)
}

func (s *Server) get(c *gin.Context) {
	b, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// availability keeps the original response shape; the flag itself is now
// computed from reservation rows instead of read from a cached column.
func (s *Server) availability(c *gin.Context) {
	id := c.Param("id")
	free, err := s.svc.Availability(c.Request.Context(), id, c.Query("start"), c.Query("end"))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "disponibilite": free})
}

func (s *Server) reserve(c *gin.Context) {
	var body struct {
		NomPersonne string `json:"nom_personne"`
		DateDebut   string `json:"date_debut"`
		DateFin     string `json:"date_fin"`
		IDBateau    string `json:"id_bateau"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Render(c, httperr.Validation("invalid request body"))
		return
	}
	res, err := s.svc.Reserve(c.Request.Context(), service.ReserveInput{
		NomPersonne: body.NomPersonne,
		DateDebut:   body.DateDebut,
		DateFin:     body.DateFin,
		IDBateau:    body.IDBateau,
	})
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": res.ID, "message": "reservation created"})
}

func (s *Server) health(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), s.gdb); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
