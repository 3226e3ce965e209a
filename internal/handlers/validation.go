package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FieldError describes one rejected field of a request body. Field is the
// JSON path, e.g. "customer.email" or "items[0].quantity".
type FieldError struct {
	Field      string      `json:"field"`
	Constraint string      `json:"constraint"`
	Value      interface{} `json:"value"`
	Message    string      `json:"message"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindJSON decodes and validates the body into obj. On failure it writes a
// 422 with per-field details and returns false; the caller must stop.
func bindJSON(c *gin.Context, route string, obj interface{}) bool {
	err := c.ShouldBindBodyWith(obj, binding.JSON)
	if err == nil {
		return true
	}

	respondValidation(c, route, describeBindError(err, requestBody(c)))
	return false
}

// requestBody returns the body cached by ShouldBindBodyWith.
func requestBody(c *gin.Context) []byte {
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		if body, ok := raw.([]byte); ok {
			return body
		}
	}
	return nil
}

func respondValidation(c *gin.Context, route string, details []FieldError) {
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	zap.L().Info("validation failed", zap.String("route", route), zap.Strings("fields", fields))
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": details,
	})
}

func describeBindError(err error, body []byte) []FieldError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			constraint := fe.Tag()
			if fe.Param() != "" {
				constraint += "=" + fe.Param()
			}
			details = append(details, FieldError{
				Field:      fieldPath(fe.Namespace()),
				Constraint: constraint,
				Value:      fe.Value(),
				Message:    validationMessage(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{describeTypeError(typeErr, body)}
	}

	return []FieldError{{
		Field:      "",
		Constraint: "json",
		Value:      nil,
		Message:    err.Error(),
	}}
}

// describeTypeError reports the submitted value and its indexed path. The
// decoder only knows the dotted field path and the JSON kind, so the body is
// walked again to find the first element that does not fit the target type.
func describeTypeError(typeErr *json.UnmarshalTypeError, body []byte) FieldError {
	fe := FieldError{
		Field:      typeErr.Field,
		Constraint: "type",
		Value:      typeErr.Value,
		Message:    "expected " + typeErr.Type.String(),
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fe
	}

	var keys []string
	if typeErr.Field != "" {
		keys = strings.Split(typeErr.Field, ".")
	}
	if path, value, ok := locateMismatch(doc, keys, "", typeErr.Type); ok {
		fe.Field = path
		fe.Value = value
	}
	return fe
}

// locateMismatch follows keys through node, fanning out over arrays in
// document order, and returns the first value that cannot decode into target.
func locateMismatch(node interface{}, keys []string, path string, target reflect.Type) (string, interface{}, bool) {
	if len(keys) == 0 {
		arr, isArray := node.([]interface{})
		if !isArray || target.Kind() == reflect.Slice || target.Kind() == reflect.Array {
			if fitsType(node, target) {
				return "", nil, false
			}
			return path, node, true
		}
		for i, el := range arr {
			if !fitsType(el, target) {
				return fmt.Sprintf("%s[%d]", path, i), el, true
			}
		}
		return "", nil, false
	}

	switch v := node.(type) {
	case []interface{}:
		for i, el := range v {
			if p, value, ok := locateMismatch(el, keys, fmt.Sprintf("%s[%d]", path, i), target); ok {
				return p, value, true
			}
		}
	case map[string]interface{}:
		child, ok := v[keys[0]]
		if !ok {
			return "", nil, false
		}
		next := keys[0]
		if path != "" {
			next = path + "." + keys[0]
		}
		return locateMismatch(child, keys[1:], next, target)
	}
	return "", nil, false
}

func fitsType(value interface{}, target reflect.Type) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, reflect.New(target).Interface()) == nil
}

// fieldPath drops the request type name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}
