package params

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	var in struct {
		ValueMm Number `json:"valueMm"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"valueMm": 52.5}`), &in))
	assert.True(t, in.ValueMm.Set)
	assert.Equal(t, 52.5, in.ValueMm.Value)

	in.ValueMm = Number{}
	require.NoError(t, json.Unmarshal([]byte(`{"valueMm": " 48 "}`), &in))
	assert.Equal(t, 48.0, in.ValueMm.Value)
	assert.JSONEq(t, `" 48 "`, string(in.ValueMm.Raw))

	in.ValueMm = Number{}
	require.NoError(t, json.Unmarshal([]byte(`{"valueMm": null}`), &in))
	assert.False(t, in.ValueMm.Set)

	in.ValueMm = Number{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	assert.False(t, in.ValueMm.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"valueMm": "abc"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"valueMm": true}`), &in))
}

func TestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	id := uuid.NewString()
	c.Params = gin.Params{{Key: "id", Value: id}}
	got, err := ID(c, "id", "product")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.Params = gin.Params{{Key: "id", Value: "64b7f0c2e4b0a1a2b3c4d5e6"}}
	_, err = ID(c, "id", "product")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.EqualError(t, err, "Invalid product ID.: validation failed")
}

func TestQueryFloat(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?priceMin=10.5&priceMax=abc", nil)

	v, err := QueryFloat(c, "priceMin")
	require.NoError(t, err)
	assert.Equal(t, 10.5, *v)

	v, err = QueryFloat(c, "weightMin")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = QueryFloat(c, "priceMax")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
