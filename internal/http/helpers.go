package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
)

// ErrorResponse is the error body returned by every route.
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondStorageError logs err and sends a 500 whose message starts with
// summary, e.g. "Couldn't store to database".
func respondStorageError(c *gin.Context, err error, summary string) {
	var storageErr *catalog.StorageError
	op := ""
	if errors.As(err, &storageErr) {
		op = storageErr.Op
	}
	slog.Error("Storage failure", "op", op, "error", err, "request_id", c.GetString(contextKeyRequestID))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("%s. Error: %v", summary, err)})
}

// parseIDParam extracts an unsigned integer ID from URL parameters.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseOptionalID parses a form id field. Blank means no value.
func parseOptionalID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	v := uint(id)
	return &v, nil
}

// parseOptionalInt parses a form integer field. Blank means zero.
func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
