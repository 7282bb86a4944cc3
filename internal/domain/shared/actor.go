package shared

// ══════════════════════════════════════════════════════════════════════════════
// ACTORS & CAPABILITIES
// Every lifecycle transition is gated by one uniform capability check instead
// of per-endpoint role tests scattered across call sites.
// ══════════════════════════════════════════════════════════════════════════════

// Role identifies the kind of actor performing an operation.
type Role string

const (
	// RoleUniversity - a partner university submitting candidate batches.
	RoleUniversity Role = "university"
	// RoleAdmin - the central administrator reviewing applications.
	RoleAdmin Role = "admin"
	// RoleSupervisor - a staff member supervising interns.
	RoleSupervisor Role = "supervisor"
	// RoleIntern - an intern submitting work.
	RoleIntern Role = "intern"
)

// IsValid reports whether the role is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleUniversity, RoleAdmin, RoleSupervisor, RoleIntern:
		return true
	default:
		return false
	}
}

// Actor is the role-tagged identity performing an operation.
type Actor struct {
	// ID - internal user identifier.
	ID string

	// Role - the actor's role.
	Role Role

	// UniversityID - owning university, set only for university actors.
	UniversityID string
}

// EntityKind names the aggregate a capability applies to.
type EntityKind string

const (
	KindApplication EntityKind = "application"
	KindCandidate   EntityKind = "candidate"
	KindIntern      EntityKind = "intern"
	KindSubmission  EntityKind = "submission"
)

// Capability describes one permitted transition trigger.
type Capability struct {
	Kind EntityKind
	Op   string
	// Roles allowed to perform the operation.
	Roles []Role
	// OwnerOnly requires the university actor to own the target entity.
	// Only meaningful when RoleUniversity is among Roles.
	OwnerOnly bool
}

// capabilities is the closed transition-authorization table. An operation
// absent from the table is denied for everyone.
var capabilities = []Capability{
	{Kind: KindApplication, Op: "Create", Roles: []Role{RoleUniversity}},
	{Kind: KindApplication, Op: "Edit", Roles: []Role{RoleUniversity}, OwnerOnly: true},
	{Kind: KindApplication, Op: "Submit", Roles: []Role{RoleUniversity}, OwnerOnly: true},
	{Kind: KindApplication, Op: "Review", Roles: []Role{RoleAdmin}},
	{Kind: KindApplication, Op: "Archive", Roles: []Role{RoleAdmin}},

	{Kind: KindCandidate, Op: "Add", Roles: []Role{RoleUniversity}, OwnerOnly: true},
	{Kind: KindCandidate, Op: "Edit", Roles: []Role{RoleUniversity}, OwnerOnly: true},
	{Kind: KindCandidate, Op: "Remove", Roles: []Role{RoleUniversity}, OwnerOnly: true},
	{Kind: KindCandidate, Op: "Review", Roles: []Role{RoleAdmin}},
	{Kind: KindCandidate, Op: "MarkArrived", Roles: []Role{RoleAdmin}},

	{Kind: KindIntern, Op: "Assign", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "UpdateProfile", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "Suspend", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "Unsuspend", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "Complete", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "Terminate", Roles: []Role{RoleAdmin, RoleSupervisor}},
	{Kind: KindIntern, Op: "IssueCertificate", Roles: []Role{RoleAdmin}},

	{Kind: KindSubmission, Op: "Create", Roles: []Role{RoleIntern}},
	{Kind: KindSubmission, Op: "Review", Roles: []Role{RoleAdmin, RoleSupervisor}},
}

// CanPerform reports whether the actor may trigger the named operation on the
// given entity kind. ownerUniversityID is the university that owns the target
// entity ("" when ownership does not apply).
func CanPerform(actor Actor, kind EntityKind, op string, ownerUniversityID string) bool {
	for _, c := range capabilities {
		if c.Kind != kind || c.Op != op {
			continue
		}
		for _, role := range c.Roles {
			if role != actor.Role {
				continue
			}
			if c.OwnerOnly && actor.Role == RoleUniversity {
				return actor.UniversityID != "" && actor.UniversityID == ownerUniversityID
			}
			return true
		}
		return false
	}
	return false
}

// Authorize is the CanPerform check expressed as an error for handler use.
func Authorize(actor Actor, kind EntityKind, op string, ownerUniversityID string) error {
	if CanPerform(actor, kind, op, ownerUniversityID) {
		return nil
	}
	return NewDomainError(string(kind), op, ErrForbidden,
		"actor "+actor.ID+" ("+string(actor.Role)+") is not allowed to perform this operation")
}
