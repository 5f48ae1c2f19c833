package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/domain"
	getAvailableSlots "github.com/ekicare/ekicare-api/internal/usecase/get_available_slots"
	"github.com/ekicare/ekicare-api/pkg/logger"
	"github.com/ekicare/ekicare-api/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*domain.DaySlots, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DaySlots{
		ProID:           req.ProID,
		Date:            req.Date,
		DurationMinutes: 60,
		Schedule:        domain.DaySchedule{Active: true, Start: "09:00", End: "12:00"},
		Slots:           []types.TimeString{"09:00", "11:00"},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/pros/{proId}/available-slots", NewHandler(uc, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	proID := uuid.New()

	rec := serve(uc, "/api/pros/"+proID.String()+"/available-slots?date=2025-03-10&duration=45")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"slots":["09:00","11:00"]`)
	assert.Contains(t, rec.Body.String(), `"date":"2025-03-10"`)

	assert.Equal(t, proID, uc.got.ProID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, 45, uc.got.DurationMinutes)
}

func TestHandler_Handle_DefaultDuration(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/pros/"+uuid.NewString()+"/available-slots?date=2025-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, uc.got.DurationMinutes)
}

func TestHandler_Handle_Errors(t *testing.T) {
	proID := uuid.NewString()

	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{name: "malformed pro id", target: "/api/pros/7/available-slots?date=2025-03-10", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "/api/pros/" + proID + "/available-slots", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/api/pros/" + proID + "/available-slots?date=10-03-2025", wantStatus: http.StatusBadRequest},
		{name: "bad duration", target: "/api/pros/" + proID + "/available-slots?date=2025-03-10&duration=1h", wantStatus: http.StatusBadRequest},
		{name: "duration out of range", target: "/api/pros/" + proID + "/available-slots?date=2025-03-10&duration=2", err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown pro", target: "/api/pros/" + proID + "/available-slots?date=2025-03-10", err: getAvailableSlots.ErrProNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", target: "/api/pros/" + proID + "/available-slots?date=2025-03-10", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
