package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanPerform(t *testing.T) {
	uni := Actor{ID: "u1", Role: RoleUniversity, UniversityID: "uni-1"}
	admin := Actor{ID: "a1", Role: RoleAdmin}
	supervisor := Actor{ID: "s1", Role: RoleSupervisor}
	internActor := Actor{ID: "i1", Role: RoleIntern}

	tests := []struct {
		name    string
		actor   Actor
		kind    EntityKind
		op      string
		ownerID string
		want    bool
	}{
		{"university creates application", uni, KindApplication, "Create", "", true},
		{"university submits own application", uni, KindApplication, "Submit", "uni-1", true},
		{"university cannot submit foreign application", uni, KindApplication, "Submit", "uni-2", false},
		{"university cannot review", uni, KindApplication, "Review", "uni-1", false},
		{"admin reviews applications", admin, KindApplication, "Review", "", true},
		{"admin archives", admin, KindApplication, "Archive", "", true},
		{"supervisor cannot archive", supervisor, KindApplication, "Archive", "", false},

		{"university adds candidate to own batch", uni, KindCandidate, "Add", "uni-1", true},
		{"university cannot add to foreign batch", uni, KindCandidate, "Add", "uni-2", false},
		{"admin records arrival", admin, KindCandidate, "MarkArrived", "", true},
		{"supervisor cannot record arrival", supervisor, KindCandidate, "MarkArrived", "", false},

		{"supervisor completes intern", supervisor, KindIntern, "Complete", "", true},
		{"only admin issues certificates", supervisor, KindIntern, "IssueCertificate", "", false},
		{"admin issues certificates", admin, KindIntern, "IssueCertificate", "", true},

		{"intern creates submission", internActor, KindSubmission, "Create", "", true},
		{"intern cannot review submission", internActor, KindSubmission, "Review", "", false},
		{"supervisor reviews submission", supervisor, KindSubmission, "Review", "", true},

		{"unknown operation denied", admin, KindApplication, "Delete", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.actor, tt.kind, tt.op, tt.ownerID))
		})
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(Actor{ID: "i1", Role: RoleIntern}, KindApplication, "Review", "")
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, Authorize(Actor{ID: "a1", Role: RoleAdmin}, KindApplication, "Review", ""))
}

func TestDomainError_KindMatching(t *testing.T) {
	err := NewDomainError("application", "Submit", ErrPreconditionFailed, "letter missing")
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.False(t, IsInvalidState(err))
	assert.Contains(t, err.Error(), "application.Submit")
}
