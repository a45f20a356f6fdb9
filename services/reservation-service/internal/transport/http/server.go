package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/db"
	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/domain"
	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/service"
)

type Server struct {
	svc *service.ReservationSvc
	gdb *gorm.DB
}

func NewServer(svc *service.ReservationSvc, gdb *gorm.DB) *Server {
	return &Server{svc: svc, gdb: gdb}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/health", s.health)
	r.GET("/reservations", s.list)
	r.GET("/reservations/:id", s.get)
	r.POST("/reservations", s.create)
	r.PUT("/reservations/:id", s.update)
	r.DELETE("/reservations/:id", s.remove)
	return r
}

type reservationBody struct {
	BoatID     string  `json:"boatId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

func (b reservationBody) input() service.Input {
	return service.Input{
		BoatID:     b.BoatID,
		FullName:   b.FullName,
		Email:      b.Email,
		Phone:      b.Phone,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
	}
}

type reservationView struct {
	ID         string  `json:"id"`
	BoatID     string  `json:"boatId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

func view(r domain.Reservation) reservationView {
	return reservationView{
		ID:         r.ID,
		BoatID:     r.BoatID,
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		StartDate:  r.StartDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
	}
}

func (s *Server) list(c *gin.Context) {
	out, err := s.svc.List(c.Request.Context())
	if err != nil {
		httperr.Render(c, err)
		return
	}
	views := make([]reservationView, 0, len(out))
	for _, r := range out {
		views = append(views, view(r))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) get(c *gin.Context) {
	res, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, view(*res))
}

func (s *Server) create(c *gin.Context) {
	var body reservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Render(c, httperr.Validation("invalid request body"))
		return
	}
	res, err := s.svc.Create(c.Request.Context(), body.input())
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": res.ID, "message": "reservation created"})
}

func (s *Server) update(c *gin.Context) {
	var body reservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Render(c, httperr.Validation("invalid request body"))
		return
	}
	res, err := s.svc.Update(c.Request.Context(), c.Param("id"), body.input())
	if err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, view(*res))
}

func (s *Server) remove(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Render(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

func (s *Server) health(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), s.gdb); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
