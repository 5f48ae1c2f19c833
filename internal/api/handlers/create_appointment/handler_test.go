package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/domain"
	createAppointment "github.com/ekicare/ekicare-api/internal/usecase/create_appointment"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID:              uuid.New(),
		OwnerID:         req.OwnerID,
		ProID:           req.ProID,
		EquideIDs:       req.EquideIDs,
		MainSlot:        req.MainSlot.UTC(),
		Status:          domain.StatusPending,
		DurationMinutes: 60,
	}, nil
}

func doRequest(h *Handler, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())

	ownerID, proID, horseID := uuid.New(), uuid.New(), uuid.New()
	body := `{"pro_id":"` + proID.String() + `","equide_ids":["` + horseID.String() + `"],` +
		`"main_slot":"2025-03-10T09:00:00Z","alternative_slots":["2025-03-11T09:00:00Z"],"comment":"Vaccin"}`

	rec := doRequest(h, ownerID, body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	require.NotNil(t, uc.got)
	assert.Equal(t, ownerID, uc.got.OwnerID)
	assert.Equal(t, proID, uc.got.ProID)
	assert.Equal(t, []uuid.UUID{horseID}, uc.got.EquideIDs)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), uc.got.MainSlot)
	assert.Len(t, uc.got.AlternativeSlots, 1)
}

func TestHandler_Handle_Errors(t *testing.T) {
	proID, horseID := uuid.New().String(), uuid.New().String()
	valid := `{"pro_id":"` + proID + `","equide_ids":["` + horseID + `"],"main_slot":"2025-03-10T09:00:00Z"}`

	tests := []struct {
		name       string
		noUser     bool
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "unauthenticated", noUser: true, body: valid, wantStatus: http.StatusUnauthorized},
		{name: "malformed json", body: `{"pro_id":`, wantStatus: http.StatusBadRequest},
		{name: "pro id not a uuid", body: `{"pro_id":"42","equide_ids":["` + horseID + `"],"main_slot":"2025-03-10T09:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "no equide", body: `{"pro_id":"` + proID + `","equide_ids":[],"main_slot":"2025-03-10T09:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "slot not rfc3339", body: `{"pro_id":"` + proID + `","equide_ids":["` + horseID + `"],"main_slot":"10/03/2025 09:00"}`, wantStatus: http.StatusBadRequest},
		{name: "missing slot", body: `{"pro_id":"` + proID + `","equide_ids":["` + horseID + `"]}`, wantStatus: http.StatusBadRequest},
		{name: "use case validation", body: valid, ucErr: createAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "caller is a pro", body: valid, ucErr: createAppointment.ErrNotOwner, wantStatus: http.StatusForbidden},
		{name: "foreign equide", body: valid, ucErr: createAppointment.ErrEquideNotOwned, wantStatus: http.StatusForbidden},
		{name: "unknown pro", body: valid, ucErr: createAppointment.ErrProNotFound, wantStatus: http.StatusNotFound},
		{name: "slot taken", body: valid, ucErr: createAppointment.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "outside working hours", body: valid, ucErr: createAppointment.ErrOutsideWorkingHours, wantStatus: http.StatusBadRequest},
		{name: "storage failure", body: valid, ucErr: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, logger.Nop())

			userID := uuid.New()
			if tt.noUser {
				userID = uuid.Nil
			}

			rec := doRequest(h, userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
