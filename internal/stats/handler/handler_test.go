package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"udcf/internal/stats"
	"udcf/internal/stats/handler/mocks"
	dErrors "udcf/pkg/domain-errors"
)

func newTestRouter(service Service) http.Handler {
	r := chi.NewRouter()
	h := New(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Register(r)
	return r
}

func TestHandleGetStats_DailyScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)

	mockService.EXPECT().
		Daily(gomock.Any()).
		Return(stats.Snapshot{Total: 3, Allowed: 2, Blocked: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats?scope=daily", nil)
	w := httptest.NewRecorder()
	newTestRouter(mockService).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "daily", resp.Scope)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, int64(2), resp.Allowed)
	assert.Equal(t, int64(1), resp.Blocked)
}

func TestHandleGetStats_AllTimeScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)

	mockService.EXPECT().
		AllTime(gomock.Any()).
		Return(stats.Snapshot{Total: 10, Allowed: 6, Blocked: 4}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats?scope=alltime", nil)
	w := httptest.NewRecorder()
	newTestRouter(mockService).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alltime", resp.Scope)
	assert.Equal(t, int64(10), resp.Total)
}

func TestHandleGetStats_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)

	mockService.EXPECT().
		GetOverview(gomock.Any()).
		Return(&stats.Overview{
			Daily:     stats.Snapshot{Total: 3, Allowed: 2, Blocked: 1},
			AllTime:   stats.Snapshot{Total: 10, Allowed: 6, Blocked: 4},
			BlockRate: 0.4,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	newTestRouter(mockService).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp OverviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Daily.Total)
	assert.Equal(t, int64(10), resp.AllTime.Total)
	assert.InDelta(t, 0.4, resp.BlockRate, 1e-9)
}

func TestHandleGetStats_UnknownScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)
	// No expectations: an unknown scope never reaches the service.

	req := httptest.NewRequest(http.MethodGet, "/stats?scope=weekly", nil)
	w := httptest.NewRecorder()
	newTestRouter(mockService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetStats_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := mocks.NewMockService(ctrl)

	mockService.EXPECT().
		GetOverview(gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeStorage, "audit store unavailable"))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	newTestRouter(mockService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
