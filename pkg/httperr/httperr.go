// Package httperr is the error taxonomy shared by all HTTP services.
// Handlers return one of these; the transport layer renders it as a JSON
// body and the matching status code. Anything else renders as a 500 with
// the cause logged server-side only.
package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// E is an error with a status code and a client-safe message.
type E struct {
	Status  int
	Message string
	cause   error
}

func (e *E) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.cause }

func Validation(msg string) *E   { return &E{Status: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) *E { return &E{Status: http.StatusUnauthorized, Message: msg} }
func NotFound(msg string) *E     { return &E{Status: http.StatusNotFound, Message: msg} }
func Conflict(msg string) *E     { return &E{Status: http.StatusConflict, Message: msg} }

// Upstream marks a dependency (database, peer service) as unreachable.
// Clients may retry; this is distinct from NotFound.
func Upstream(msg string, cause error) *E {
	return &E{Status: http.StatusServiceUnavailable, Message: msg, cause: cause}
}

func Internal(msg string, cause error) *E {
	return &E{Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// Render writes err as {"error": msg}. Unknown errors become a generic 500;
// their details are logged, never returned.
func Render(c *gin.Context, err error) {
	var e *E
	if errors.As(err, &e) {
		if e.cause != nil {
			log.Printf("%s: %v", c.FullPath(), e.cause)
		}
		c.JSON(e.Status, gin.H{"error": e.Message})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	log.Printf("%s: %v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
