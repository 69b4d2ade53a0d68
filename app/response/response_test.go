package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayline-services/assist/pkg/errors"
	"github.com/jayline-services/assist/pkg/i18n"
)

func newTestContext(method string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/api/v1/suggestions", nil)
	c.Set("i18n", i18n.NewLocalizer("en"))
	NewResponse()(c)
	return c, w
}

func TestAPISuccessWritesOK(t *testing.T) {
	c, w := newTestContext(http.MethodGet)

	APISuccess(c, map[string]string{"answer": "hello"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"answer":"hello"`)
	assert.Contains(t, w.Body.String(), `"request_id"`)
}

func TestAPICreatedWritesCreated(t *testing.T) {
	c, w := newTestContext(http.MethodPost)

	APICreated(c, map[string]string{"id": "1", "status": "pending"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestAPIErrorWritesLocalizedMessage(t *testing.T) {
	c, w := newTestContext(http.MethodPost)

	APIError(c, errors.New("test.trace", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid argument")
	assert.True(t, c.IsAborted())
}
