package update_rules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/service/rules"
	"github.com/m04kA/SMC-BookingEngine/internal/service/rules/models"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type fakeService struct {
	got *models.PutRulesRequest
	err error
}

func (f *fakeService) Put(_ context.Context, req *models.PutRulesRequest) (*models.RulesResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	id := int64(3)
	return &models.RulesResponse{
		ID:            &id,
		TenantID:      req.TenantID,
		Category:      req.Category,
		Source:        models.SourceCategory,
		BufferMinutes: *req.BufferMinutes,
	}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/tenants/{tenantId}/rules", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/tenants/10/rules", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"category":"tax","bufferMinutes":30}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, int64(10), svc.got.TenantID)
	assert.Equal(t, "tax", *svc.got.Category)
	assert.Nil(t, svc.got.DepositRequired)

	var resp models.RulesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 30, resp.BufferMinutes)
	assert.Equal(t, models.SourceCategory, resp.Source)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"tenant id in body is rejected", `{"tenantId":5,"bufferMinutes":10}`, nil, http.StatusBadRequest},
		{"malformed", `{"bufferMinutes":`, nil, http.StatusBadRequest},
		{"rules rejected", `{"bufferMinutes":-5}`, fmt.Errorf("%w: buffer", rules.ErrInvalidInput), http.StatusBadRequest},
		{"internal", `{"bufferMinutes":5}`, fmt.Errorf("%w: db", rules.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
