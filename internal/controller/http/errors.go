package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jrjohn/docstore-users/internal/dto/response"
	apperrors "github.com/jrjohn/docstore-users/pkg/errors"
)

var registerFieldNames sync.Once

// useJSONFieldNames makes validation errors report json field names.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError writes the error body for err. Server faults get a generic
// message so driver details never reach the client.
func respondError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	status := apperrors.GetStatus(err)
	if status == http.StatusInternalServerError {
		ctx.JSON(status, response.NewErrorResponse(status, "internal server error", ""))
		return
	}

	message, detail := err.Error(), ""
	if appErr, ok := apperrors.As(err); ok {
		message, detail = appErr.Message, appErr.Detail
	}
	ctx.JSON(status, response.NewErrorResponse(status, message, detail))
}

// respondBindError answers a request that failed binding or validation.
func respondBindError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		ctx.JSON(http.StatusBadRequest, response.NewValidationErrorResponse(fields))
		return
	}
	ctx.JSON(http.StatusBadRequest, response.NewErrorResponse(http.StatusBadRequest, "malformed request body", err.Error()))
}

func fieldMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
