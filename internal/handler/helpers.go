package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/validator"
)

// pathID parses a numeric path parameter. Non-numeric ids are a 400, never a
// route miss.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperror.New(400, "invalid "+name, apperror.ErrBadRequest)
	}
	return uint(id), nil
}

// bindError wraps a binding failure with the formatted validation message.
func bindError(err error) error {
	return apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput)
}
