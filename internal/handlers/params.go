package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter. An id that is not a positive
// integer can never match a row, so it is reported as not found rather than
// being passed to the store.
func pathID(ctx *gin.Context, kind string) (uint64, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": kind + " not found"})
		return 0, false
	}

	return id, true
}
