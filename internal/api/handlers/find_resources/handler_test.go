package find_resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	findResources "github.com/m04kA/SMC-BookingEngine/internal/usecase/find_resources"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type fakeUseCase struct {
	got  *findResources.Request
	resp *findResources.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *findResources.Request) (*findResources.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, loc *time.Location, userID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.OptionalAuth)
	router.HandleFunc("/tenants/{tenantId}/resources/search", NewHandler(uc, loc, logger.NewNop()).Handle).
		Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/tenants/10/resources/search", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Found(t *testing.T) {
	uc := &fakeUseCase{resp: &findResources.Response{Matches: []findResources.Match{
		{Resource: domain.Resource{ID: 3, Name: "Alice"}, Score: 152, Preferred: true, Price: 200},
	}}}

	rec := serve(uc, nil, "100", `{
		"start": "2030-06-03T10:00:00Z",
		"end": "2030-06-03T11:00:00Z",
		"category": "tax",
		"preferredResourceId": 3
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.ClientID)
	assert.Equal(t, int64(100), *uc.got.ClientID)
	assert.Equal(t, int64(3), *uc.got.PreferredResourceID)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Alice", resp.Matches[0].Name)
	assert.Equal(t, []string{}, resp.Matches[0].Specializations)
	assert.True(t, resp.Matches[0].Preferred)
}

func TestHandle_TimesInEngineLocation(t *testing.T) {
	uc := &fakeUseCase{resp: &findResources.Response{}}

	// 09:00 +09:00 - это полночь по UTC, вне рабочих часов ресурсов
	rec := serve(uc, time.UTC, "", `{
		"start": "2030-06-03T09:00:00+09:00",
		"end": "2030-06-03T10:00:00+09:00",
		"category": "tax"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.ClientID)
	assert.Equal(t, time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC), uc.got.Start)
	assert.Equal(t, time.Date(2030, 6, 3, 1, 0, 0, 0, time.UTC), uc.got.End)
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"start": "2030-06-03T10:00:00Z", "end": "2030-06-03T11:00:00Z", "category": "tax"}`

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad json", `{"start":`, nil, http.StatusBadRequest},
		{"bad time", `{"start": "monday", "end": "2030-06-03T11:00:00Z", "category": "tax"}`, nil, http.StatusBadRequest},
		{"invalid input", valid, findResources.ErrInvalidInput, http.StatusBadRequest},
		{"internal", valid, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err, resp: &findResources.Response{}}, nil, "", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
