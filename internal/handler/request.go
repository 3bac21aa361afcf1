package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/flowdeck/internal/domain"
)

// validate is shared by every handler; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody decodes the JSON request body into dst and validates it.
// Malformed bodies wrap errBadRequest; rule violations wrap domain.ErrValidation.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", errBadRequest)
		default:
			return fmt.Errorf("%w: malformed JSON: %s", errBadRequest, err.Error())
		}
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, formatValidationError(err))
	}
	return nil
}

// formatValidationError joins field errors into one readable message.
func formatValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// pathID binds the {id} path parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid format for parameter id", errBadRequest)
	}
	return id, nil
}

// pathTagName binds the {name} path parameter. The parameter is still
// escaped (see routeEscapedPath) and binding unescapes it once, so tag names
// may contain spaces, slashes, percent signs or text that looks escaped.
func pathTagName(r *http.Request) (string, error) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "name", chi.URLParam(r, "name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: invalid format for parameter name", errBadRequest)
	}
	return name, nil
}

// listParams holds the query parameters accepted by list endpoints.
type listParams struct {
	Q      *string
	Status *string
	Tag    *string
	Sort   *string
	Order  *string
	Page   *int
	Limit  *int
}

func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	query := r.URL.Query()
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"status", &p.Status},
		{"tag", &p.Tag},
		{"sort", &p.Sort},
		{"order", &p.Order},
		{"page", &p.Page},
		{"limit", &p.Limit},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return listParams{}, fmt.Errorf("%w: invalid format for parameter %s", errBadRequest, b.name)
		}
	}
	return p, nil
}

// entityQuery converts list params into the filter, sort and page the
// entity services take. Sort field values are checked by the service.
func (p listParams) entityQuery() (domain.ListFilter, domain.Sort, domain.PaginationParams, error) {
	f := domain.ListFilter{
		Search: derefString(p.Q),
		Status: domain.Status(derefString(p.Status)),
		Tag:    strings.TrimSpace(derefString(p.Tag)),
	}
	s := domain.Sort{Field: domain.SortField(derefString(p.Sort))}
	switch order := derefString(p.Order); order {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return f, s, domain.PaginationParams{}, fmt.Errorf("%w: order must be one of: asc desc", domain.ErrValidation)
	}
	return f, s, domain.NewPaginationParams(p.Page, p.Limit), nil
}

// derefString returns the value of s, or "" if s is nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
