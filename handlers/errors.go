package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitemetrics/lookup_api/pkg/dnsx"
	"github.com/sitemetrics/lookup_api/pkg/normalize"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

// respondError maps the error taxonomy onto the uniform error contract:
// 400 for validation failures, 404 for confirmed-nonexistent subjects, 500
// for provider exhaustion and anything unexpected. Intermediate provider
// failures never reach this function; the chain absorbs them.
func respondError(c *gin.Context, err error) {
	var verr *normalize.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}

	if errors.Is(err, resolve.ErrNotFound) || errors.Is(err, dnsx.ErrNXDomain) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no record exists for the requested subject"})
		return
	}

	var rerr *resolve.Error
	if errors.As(err, &rerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": rerr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
