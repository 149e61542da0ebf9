package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/shared/apperr"
)

func newContext(params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = params
	return c
}

func TestParseID(t *testing.T) {
	id, err := ParseID(newContext(gin.Params{{Key: "id", Value: "42"}}), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for raw, want := range map[string]int64{"0": 0, "-3": -3} {
		id, err := ParseID(newContext(gin.Params{{Key: "id", Value: raw}}), "id")
		require.NoError(t, err, raw)
		assert.Equal(t, want, id)
	}

	for _, bad := range []string{"abc", "", "1.5", "99999999999999999999"} {
		_, err := ParseID(newContext(gin.Params{{Key: "id", Value: bad}}), "id")
		assert.ErrorIs(t, err, apperr.ErrInvalidID, bad)
	}
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt(newContext(gin.Params{{Key: "year", Value: "-44"}}), "year")
	require.NoError(t, err)
	assert.Equal(t, -44, v)

	_, err = ParseInt(newContext(gin.Params{{Key: "year", Value: "nineteen"}}), "year")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestExtractClientIP(t *testing.T) {
	c := newContext(nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ExtractClientIP(c))

	c = newContext(nil)
	c.Request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", ExtractClientIP(c))

	c = newContext(nil)
	c.Request.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "192.168.1.5", ExtractClientIP(c))
}
