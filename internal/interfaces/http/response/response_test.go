package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainerrors "cred-vault.backend/internal/domain/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	fn(c)
	return rec
}

func TestSuccess(t *testing.T) {
	rec := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"id": 1})
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestError_DomainMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{domainerrors.ErrPermissionDenied, http.StatusNotFound, "not_found"},
		{domainerrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{domainerrors.ErrConflict, http.StatusConflict, "conflict"},
		{domainerrors.ErrStorageFailure, http.StatusInternalServerError, "internal"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := record(func(c *gin.Context) {
			Error(c, tc.err)
		})
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Contains(t, rec.Body.String(), tc.code)
	}
}

func TestError_PermissionDeniedNotDistinguishable(t *testing.T) {
	notFound := record(func(c *gin.Context) { Error(c, domainerrors.ErrNotFound) })
	denied := record(func(c *gin.Context) { Error(c, domainerrors.ErrPermissionDenied) })

	assert.Equal(t, notFound.Code, denied.Code)
	assert.Equal(t, notFound.Body.String(), denied.Body.String())
}

func TestError_PrebuiltAppError(t *testing.T) {
	appErr := domainerrors.NewAppError(http.StatusTeapot, "teapot", "short and stout", nil)
	rec := record(func(c *gin.Context) {
		Error(c, appErr)
	})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "teapot")
}

func TestBadRequest(t *testing.T) {
	rec := record(func(c *gin.Context) {
		BadRequest(c, errors.New("missing field"))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing field")
}
