package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
)

func TestActorFromRequest(t *testing.T) {
	newReq := func(id, role, uni string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != "" {
			r.Header.Set(headerActorID, id)
		}
		if role != "" {
			r.Header.Set(headerActorRole, role)
		}
		if uni != "" {
			r.Header.Set(headerUniversityID, uni)
		}
		return r
	}

	t.Run("valid headers", func(t *testing.T) {
		actor, err := actorFromRequest(newReq("user-1", "University", "uni-1"))
		require.NoError(t, err)
		assert.Equal(t, "user-1", actor.ID)
		assert.Equal(t, shared.RoleUniversity, actor.Role)
		assert.Equal(t, "uni-1", actor.UniversityID)
	})

	t.Run("missing identity", func(t *testing.T) {
		_, err := actorFromRequest(newReq("", "admin", ""))
		assert.Error(t, err)

		_, err = actorFromRequest(newReq("user-1", "", ""))
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := actorFromRequest(newReq("user-1", "superuser", ""))
		assert.Error(t, err)
	})
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", shared.NewDomainError("application", "Create", shared.ErrValidation, "bad"), http.StatusBadRequest, "validation_error"},
		{"forbidden", shared.NewDomainError("application", "Review", shared.ErrForbidden, "no"), http.StatusForbidden, "forbidden"},
		{"not found", shared.NewDomainError("candidate", "Find", shared.ErrNotFound, "gone"), http.StatusNotFound, "not_found"},
		{"conflict", shared.NewDomainError("candidate", "Create", shared.ErrConflict, "dup"), http.StatusConflict, "conflict"},
		{"invalid state", shared.NewDomainError("intern", "Complete", shared.ErrInvalidState, "terminal"), http.StatusUnprocessableEntity, "invalid_state"},
		{"precondition", shared.NewDomainError("application", "Submit", shared.ErrPreconditionFailed, "empty"), http.StatusUnprocessableEntity, "precondition_failed"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusForError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteDomainError_HidesInternalDetails(t *testing.T) {
	s := &Server{}

	rec := httptest.NewRecorder()
	s.writeDomainError(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Contains(t, rec.Body.String(), "internal_server_error")
}

func TestListOptionsFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/applications?offset=20&limit=10&sort=-created_at", nil)
	opts := listOptionsFromQuery(r)
	assert.Equal(t, 20, opts.Offset)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, "created_at", opts.SortBy)
	assert.True(t, opts.SortDesc)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/applications?offset=junk&limit=-5", nil)
	opts = listOptionsFromQuery(r)
	assert.Zero(t, opts.Offset)
	assert.NotZero(t, opts.Limit)
}
