package httpHandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"kb-server/usecases"
)

// FieldError itemizes one invalid input field in the response envelope.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the envelope every endpoint answers with, success or not.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// fail resolves the error's kind to a status code once, at the boundary.
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch usecases.KindOf(err) {
	case usecases.KindNotFound:
		status = http.StatusNotFound
	case usecases.KindUnauthorized:
		status = http.StatusUnauthorized
	}

	c.JSON(status, Response{Success: false, Message: err.Error()})
}

func validationFailed(c *gin.Context, fieldErrors []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// bindJSON binds and, on schema mismatch, writes the itemized 400 itself.
// Returns false when the request was already answered.
func bindJSON(c *gin.Context, target interface{}) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		validationFailed(c, fieldErrors)
		return false
	}

	c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
	return false
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	label := strings.ToUpper(field[:1]) + field[1:]
	if field == "body" {
		label = "Content"
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if field == "password" {
			return "Password must be at least " + fe.Param() + " characters long"
		}
		return label + " is required"
	case "max":
		return label + " must be less than " + fe.Param() + " characters"
	}
	return "Invalid " + field
}
