package delete_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/appointments"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type fakeService struct {
	deleted []uuid.UUID
	err     error
}

func (f *fakeService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestHandler_Handle(t *testing.T) {
	apptID := uuid.New()

	tests := []struct {
		name        string
		noUser      bool
		id          string
		err         error
		wantStatus  int
		wantDeleted bool
	}{
		{name: "owner deletes pending request", id: apptID.String(), wantStatus: http.StatusNoContent, wantDeleted: true},
		{name: "unauthenticated", noUser: true, id: apptID.String(), wantStatus: http.StatusUnauthorized},
		{name: "malformed id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "not a participant", id: apptID.String(), err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "not deletable", id: apptID.String(), err: appointments.ErrCannotDelete, wantStatus: http.StatusForbidden},
		{name: "storage failure", id: apptID.String(), err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			router := mux.NewRouter()
			router.HandleFunc("/api/appointments/{id}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

			req := httptest.NewRequest(http.MethodDelete, "/api/appointments/"+tt.id, nil)
			if !tt.noUser {
				req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDeleted {
				assert.Equal(t, []uuid.UUID{apptID}, svc.deleted)
				assert.Empty(t, rec.Body.String())
			} else {
				assert.Empty(t, svc.deleted)
			}
		})
	}
}
