package httpapi

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// bindJSON decodes the request body and converts binding failures into the
// validation envelope with field-level detail. Returns false when the request
// has already been answered.
func bindJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		apierrors.Respond(c, validationError(err))
		return false
	}
	return true
}

func validationError(err error) apierrors.APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]envelope.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, envelope.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		return apierrors.ErrValidation.WithFields(fields)
	}
	return apierrors.ErrValidation.WithMessage("malformed request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed validation on " + fe.Tag()
	}
}
