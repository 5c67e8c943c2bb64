package bookRecipeFactory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	requestIdMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/requestid"
	versionMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/version"
	bookRecipeFactory "github.com/gmaschi/go-recipe-book-api/internal/factories/book-recipe-factory"
	mockedstore "github.com/gmaschi/go-recipe-book-api/internal/mocks/datastore/postgresql/recipes"
	"github.com/gmaschi/go-recipe-book-api/internal/services/cache"
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/gmaschi/go-recipe-book-api/pkg/config/env"
	"github.com/gmaschi/go-recipe-book-api/pkg/metrics"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/random"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCachedReadsAreInvalidatedByUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisServer := miniredis.RunT(t)
	client, err := cache.OpenRedis(context.Background(), "redis://"+redisServer.Addr())
	require.NoError(t, err)
	backend := cache.NewRedis(client)
	defer backend.Close()

	recipe := randomRecipe(t)
	updated := randomRecipe(t)
	updated.ID = recipe.ID

	store := mockedstore.NewMockStore(ctrl)
	gomock.InOrder(
		store.EXPECT().LoadRecipe(gomock.Any(), gomock.Eq(recipe.ID)).Times(1).Return(&recipe, nil),
		store.EXPECT().LoadRecipe(gomock.Any(), gomock.Eq(recipe.ID)).Times(1).Return(&recipe, nil),
		store.EXPECT().ReplaceRecipe(gomock.Any(), gomock.Eq(updated)).Times(1).Return(nil),
		store.EXPECT().LoadRecipe(gomock.Any(), gomock.Eq(recipe.ID)).Times(1).Return(&updated, nil),
	)

	m := metrics.New()
	server, err := bookRecipeFactory.New(env.NewConfig(), store,
		bookRecipeFactory.WithCache(backend),
		bookRecipeFactory.WithMetrics(m),
	)
	require.NoError(t, err)

	path := "/api/v1/recipes/" + recipe.ID.String()

	// The first read fills the cache and the second is served from it.
	for i := 0; i < 2; i++ {
		recorder := serve(t, server, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Contains(t, recorder.Body.String(), recipe.Title)
	}
	require.True(t, redisServer.Exists(cache.Key(recipe.ID)))
	ttl := redisServer.TTL(cache.Key(recipe.ID))
	require.True(t, ttl > 0 && ttl <= env.DefaultCacheTTL)

	body, err := json.Marshal(map[string]interface{}{
		"title":        updated.Title,
		"description":  updated.Description,
		"author":       updated.Author,
		"ingredients":  updated.Ingredients,
		"instructions": updated.Instructions,
	})
	require.NoError(t, err)

	recorder := serve(t, server, http.MethodPut, path, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.False(t, redisServer.Exists(cache.Key(recipe.ID)))

	recorder = serve(t, server, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), updated.Title)

	metricsRecorder := serve(t, server, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, metricsRecorder.Code)
	require.Contains(t, metricsRecorder.Body.String(), `recipebook_cache_lookups_total{result="hit"} 1`)
	require.Contains(t, metricsRecorder.Body.String(), `recipebook_cache_lookups_total{result="miss"} 2`)
}

func TestSystemRoutes(t *testing.T) {
	testCases := []struct {
		name          string
		path          string
		buildStubs    func(store *mockedstore.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "Health",
			path: "/healthz",
			buildStubs: func(store *mockedstore.MockStore) {
				store.EXPECT().Ping(gomock.Any()).Times(1).Return(nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.NotEmpty(t, recorder.Header().Get(requestIdMiddleware.HeaderKey))
			},
		},
		{
			name:       "Metrics",
			path:       "/metrics",
			buildStubs: func(store *mockedstore.MockStore) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), "go_goroutines")
			},
		},
		{
			name:       "OpenAPI",
			path:       "/openapi/v1.json",
			buildStubs: func(store *mockedstore.MockStore) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), `"openapi":"3.0.1"`)
			},
		},
		{
			name:       "UnknownRoute",
			path:       "/api/v1/authors",
			buildStubs: func(store *mockedstore.MockStore) {},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
				require.Empty(t, recorder.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mockedstore.NewMockStore(ctrl)
			tc.buildStubs(store)

			server, err := bookRecipeFactory.New(env.NewConfig(), store)
			require.NoError(t, err)

			recorder := serve(t, server, http.MethodGet, tc.path, nil)
			require.Equal(t, "1", recorder.Header().Get(versionMiddleware.SupportedVersionsHeaderKey))
			tc.checkResponse(t, recorder)
		})
	}
}

func TestStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	config := env.NewConfig()
	config.ShutdownTimeout = time.Second

	server, err := bookRecipeFactory.New(config, mockedstore.NewMockStore(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartInvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server, err := bookRecipeFactory.New(env.NewConfig(), mockedstore.NewMockStore(ctrl))
	require.NoError(t, err)

	err = server.Start(context.Background(), "127.0.0.1:-1")
	require.Error(t, err)
}

func serve(t *testing.T, server http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func randomRecipe(t *testing.T) db.Recipe {
	id, err := uuid.NewV7()
	require.NoError(t, err)

	return db.Recipe{
		ID:           id,
		Title:        random.Sentence(3),
		Description:  random.Sentence(6),
		Author:       random.String(10),
		Ingredients:  random.StringSlice(5),
		Instructions: random.StringSlice(4),
	}
}
