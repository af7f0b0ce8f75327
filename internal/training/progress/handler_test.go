package progress_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/volleyfit/internal/training/progress"
)

func newTestProgressRouter(service *MockprogressService) *mux.Router {
	r := mux.NewRouter()
	progress.NewHandler(service).SetupRoutes(r)
	return r
}

func TestHandler_HandleModuleProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	serviceMock := NewMockprogressService(ctrl)
	r := newTestProgressRouter(serviceMock)

	seconds := 45
	serviceMock.EXPECT().ModuleProgress(gomock.Any(), "strength").Return(progress.ModuleProgress{
		TotalSets:   2,
		LastWorkout: "Mar 02, 2024",
		Improvement: 50,
		Series: map[string][]progress.Point{
			"plank": {
				{Date: "Mar 01", Reps: 30},
				{Date: "Mar 02", Reps: 45, Time: &seconds},
			},
		},
	}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/modules/strength/progress", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"totalSets": 2,
		"lastWorkout": "Mar 02, 2024",
		"improvement": 50,
		"series": {
			"plank": [
				{"date": "Mar 01", "reps": 30},
				{"date": "Mar 02", "reps": 45, "time": 45}
			]
		}
	}`, rr.Body.String())

	serviceMock.EXPECT().ModuleProgress(gomock.Any(), "beach").
		Return(progress.ModuleProgress{}, fmt.Errorf("%w: beach", progress.ErrUnknownModule))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/modules/beach/progress", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	serviceMock.EXPECT().ModuleProgress(gomock.Any(), "stretching").
		Return(progress.ModuleProgress{}, errors.New("store down"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/modules/stretching/progress", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleAllProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	serviceMock := NewMockprogressService(ctrl)
	r := newTestProgressRouter(serviceMock)

	serviceMock.EXPECT().AllProgress(gomock.Any()).Return(map[string]progress.ModuleProgress{
		"strength": {
			LastWorkout: progress.NoWorkoutsYet,
			Series:      map[string][]progress.Point{},
		},
	}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/progress", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]progress.ModuleProgress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Contains(t, resp, "strength")
	assert.Equal(t, "No workouts yet", resp["strength"].LastWorkout)

	serviceMock.EXPECT().AllProgress(gomock.Any()).Return(nil, errors.New("store down"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/progress", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
