package versionMiddleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	versionMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/version"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/parseErrors"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		segment string
		want    int
		ok      bool
	}{
		{segment: "v1", want: 1, ok: true},
		{segment: "v1.0", want: 1, ok: true},
		{segment: "v2", want: 2, ok: true},
		{segment: "v1.5"},
		{segment: "1"},
		{segment: "version1"},
		{segment: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.segment, func(t *testing.T) {
			got, ok := versionMiddleware.Parse(tc.segment)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRewrite(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		headers map[string]string
		want    string
	}{
		{name: "DefaultVersion", path: "/api/recipes", want: "/api/v1/recipes"},
		{name: "TrailingSlash", path: "/api/recipes/", want: "/api/v1/recipes/"},
		{name: "WithID", path: "/api/recipes/0190c6e2-7a3c-7d1e-9f4a-2b1c3d4e5f60", want: "/api/v1/recipes/0190c6e2-7a3c-7d1e-9f4a-2b1c3d4e5f60"},
		{name: "Header", path: "/api/recipes", headers: map[string]string{versionMiddleware.HeaderKey: "2"}, want: "/api/v2/recipes"},
		{name: "AlternateHeader", path: "/api/recipes", headers: map[string]string{versionMiddleware.AlternateHeaderKey: "1.0"}, want: "/api/v1.0/recipes"},
		{name: "HeaderPrecedence", path: "/api/recipes", headers: map[string]string{versionMiddleware.HeaderKey: "1", versionMiddleware.AlternateHeaderKey: "3"}, want: "/api/v1/recipes"},
		{name: "AlreadyVersioned", path: "/api/v1/recipes", headers: map[string]string{versionMiddleware.HeaderKey: "2"}, want: "/api/v1/recipes"},
		{name: "OtherResource", path: "/api/recipesx", want: "/api/recipesx"},
		{name: "Health", path: "/healthz", want: "/healthz"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tc.path, nil)
			for k, v := range tc.headers {
				request.Header.Set(k, v)
			}

			got := versionMiddleware.Rewrite(request, "/api", "recipes")
			require.Equal(t, tc.want, got.URL.Path)
			require.Equal(t, tc.path, request.URL.Path)
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	testCases := []struct {
		name          string
		path          string
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "Supported",
			path: "/api/v1/recipes",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Equal(t, "1", recorder.Body.String())
			},
		},
		{
			name: "SupportedMinor",
			path: "/api/v1.0/recipes",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "Unsupported",
			path: "/api/v2/recipes",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireUnsupported(t, recorder)
			},
		},
		{
			name: "Malformed",
			path: "/api/latest/recipes",
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				requireUnsupported(t, recorder)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/api/:version/recipes", versionMiddleware.VersionMiddleware(), func(ctx *gin.Context) {
				ctx.String(http.StatusOK, "%d", versionMiddleware.FromContext(ctx))
			})

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, tc.path, nil)
			router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestReportSupported(t *testing.T) {
	header := http.Header{}
	versionMiddleware.ReportSupported(header)
	require.Equal(t, "1", header.Get(versionMiddleware.SupportedVersionsHeaderKey))
}

func requireUnsupported(t *testing.T, recorder *httptest.ResponseRecorder) {
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, parseErrors.ContentType, recorder.Header().Get("Content-Type"))

	var problem parseErrors.Problem
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "Unsupported API version", problem.Title)
	require.Equal(t, http.StatusBadRequest, problem.Status)
}
