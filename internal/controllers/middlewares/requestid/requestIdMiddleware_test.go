package requestIdMiddleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	requestIdMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	testCases := []struct {
		name          string
		header        string
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder, seen string)
	}{
		{
			name:   "Propagated",
			header: "abc-123",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, seen string) {
				require.Equal(t, "abc-123", recorder.Header().Get(requestIdMiddleware.HeaderKey))
				require.Equal(t, "abc-123", seen)
			},
		},
		{
			name: "Generated",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, seen string) {
				id := recorder.Header().Get(requestIdMiddleware.HeaderKey)
				_, err := uuid.Parse(id)
				require.NoError(t, err)
				require.Equal(t, id, seen)
			},
		},
		{
			name:   "OversizedIsReplaced",
			header: strings.Repeat("x", 500),
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, seen string) {
				id := recorder.Header().Get(requestIdMiddleware.HeaderKey)
				_, err := uuid.Parse(id)
				require.NoError(t, err)
				require.Equal(t, id, seen)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(requestIdMiddleware.RequestIDMiddleware())

			var seen string
			router.GET("/", func(ctx *gin.Context) {
				seen = requestIdMiddleware.FromContext(ctx)
				ctx.Status(http.StatusOK)
			})

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			if tc.header != "" {
				request.Header.Set(requestIdMiddleware.HeaderKey, tc.header)
			}

			router.ServeHTTP(recorder, request)
			require.Equal(t, http.StatusOK, recorder.Code)
			tc.checkResponse(t, recorder, seen)
		})
	}
}
