package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Assign())
	r.GET("/", func(c *gin.Context) {
		*seen = FromContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestAssignMintsID(t *testing.T) {
	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(Header))
}

func TestAssignEchoesInboundID(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "abc-123")
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
}

func TestAssignReplacesMalformedID(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "bad id\twith spaces")
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, req)

	assert.NotEqual(t, "bad id\twith spaces", seen)
	assert.NotEmpty(t, seen)
}

func TestFromContextOutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, FromContext(c))
}
