package respond

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 with a Location header pointing at the new resource.
func Created(c *gin.Context, location string, payload interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	JSON(c, http.StatusCreated, payload)
}

// NoContent ends a successful mutation that returns no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ChildPath joins id onto the request path, e.g. POST /history -> /history/<id>.
func ChildPath(c *gin.Context, id string) string {
	return path.Join(c.Request.URL.Path, id)
}
