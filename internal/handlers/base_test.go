package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
		body string
	}{
		{fmt.Errorf("%w: post x", services.ErrNotFound), http.StatusNotFound, `not found: post x`},
		{fmt.Errorf("%w: title", services.ErrValidation), http.StatusBadRequest, `validation failed: title`},
		{fmt.Errorf("%w: upload", services.ErrStorage), http.StatusBadRequest, `storage error: upload`},
		{fmt.Errorf("%w: insert", services.ErrPersistence), http.StatusBadRequest, `persistence error: insert`},
		{errors.New("secret detail"), http.StatusInternalServerError, `internal server error`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/posts", nil)

		respondError(c, tc.err)

		assert.Equal(t, tc.code, w.Code)
		assert.Contains(t, w.Body.String(), tc.body)
		assert.NotContains(t, w.Body.String(), "secret detail")
	}
}
