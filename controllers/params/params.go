// Package params parses path, query and body values shared by the handlers.
package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/jewelry-api/apperr"
)

// ID reads path parameter name and rejects values that are not UUIDs.
func ID(c *gin.Context, name, what string) (string, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperr.Validation(fmt.Sprintf("Invalid %s ID.", what))
	}
	return id.String(), nil
}

// ValidID reports whether s parses as a UUID.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// QueryFloat parses an optional numeric query parameter.
func QueryFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("Query parameter '%s' must be a number.", name))
	}
	return &v, nil
}

// Number is a JSON value sent either as a number or as a numeric string.
type Number struct {
	Value float64
	Raw   json.RawMessage
	Set   bool
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.Raw = append(n.Raw[:0], data...)
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		n.Value, n.Set = v, true
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return fmt.Errorf("%s is not a number", trimmed)
	}
	n.Value, n.Set = v, true
	return nil
}
