package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusError is satisfied by errors that carry an HTTP status and an
// optional data payload (graph.RequestError in practice).
type statusError interface {
	error
	StatusCode() int
	ErrorData() interface{}
}

// Errors renders any error attached by a handler as a {message, data}
// JSON body. Errors without an attached status default to 500.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := "An error occurred."
		var data interface{}

		var se statusError
		if errors.As(err, &se) {
			status = se.StatusCode()
			message = se.Error()
			data = se.ErrorData()
		} else {
			log.Printf("unhandled error: %v", err)
		}

		body := gin.H{"message": message}
		if data != nil {
			body["data"] = data
		}
		c.JSON(status, body)
	}
}
