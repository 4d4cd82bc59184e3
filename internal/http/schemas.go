package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// UserRequest is the accepted body for creating or replacing a user.
type UserRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=50"`
	Email string `json:"email" binding:"required,min=2,max=100"`
}

// BookRequest is the accepted body for creating or editing a book.
// A missing or null description is left nil.
type BookRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=100"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the json name of a field.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes and validates the request body into obj. On failure it
// writes a 422 response and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	useJSONFieldNames()
	if err := c.ShouldBindJSON(obj); err != nil {
		respondValidation(c, validationIssues(err))
		return false
	}
	return true
}

// validationIssues converts decoding and validation errors into response issues.
func validationIssues(err error) []ValidationIssue {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, fieldIssue(fe))
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// An empty Field means the body itself is not a JSON object.
		if typeErr.Field == "" {
			return []ValidationIssue{{
				Loc:  []string{"body"},
				Msg:  "Input should be a valid dictionary or object to extract fields from",
				Type: "model_attributes_type",
			}}
		}
		return []ValidationIssue{{
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.Kind()),
			Type: typeErr.Type.Kind().String() + "_type",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []ValidationIssue{{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}}
	}

	return []ValidationIssue{{
		Loc:  []string{"body"},
		Msg:  "JSON decode error",
		Type: "json_invalid",
	}}
}

func fieldIssue(fe validator.FieldError) ValidationIssue {
	issue := ValidationIssue{Loc: []string{"body", fe.Field()}}
	switch fe.Tag() {
	case "required":
		issue.Msg = "Field required"
		issue.Type = "missing"
	case "min":
		issue.Msg = fmt.Sprintf("String should have at least %s characters", fe.Param())
		issue.Type = "string_too_short"
	case "max":
		issue.Msg = fmt.Sprintf("String should have at most %s characters", fe.Param())
		issue.Type = "string_too_long"
	default:
		issue.Msg = fe.Error()
		issue.Type = fe.Tag()
	}
	return issue
}
