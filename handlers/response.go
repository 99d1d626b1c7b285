package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"casedesk-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report json field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON binds the request body into obj. On failure it writes the error
// response and returns false: 422 for field errors, 400 for unreadable bodies.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		validationFailed(c, fields)
		return false
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		validationFailed(c, map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()})
		return false
	}

	middleware.Abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Malformed request body")
	return false
}

func validationFailed(c *gin.Context, fields map[string]string) {
	body := middleware.ErrorBody("VALIDATION_FAILED", "Request validation failed")
	body["fields"] = fields
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
}

// fieldPath drops the struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "http_url":
		return "must be an http or https URL"
	case "http_url|eq=":
		return "must be an http or https URL or empty"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// respondError maps a service error onto the error envelope.
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}
