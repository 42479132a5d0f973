package policy

import "github.com/laakri/DevCollab/internal/auth"

type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated caller as seen by a policy.
type Actor struct {
	UserID string
	Role   string
}

// Policy decides whether actor may perform action on resource.
type Policy interface {
	Can(actor Actor, action Action, resource any) bool
}

// Ownable is implemented by models that have a single owning user.
type Ownable interface {
	GetUserID() string
}

// Participatory is implemented by models with more than one member.
type Participatory interface {
	Ownable
	Involves(userID string) bool
}

// OwnershipPolicy allows an action only to the resource owner.
// Resources that are not Ownable are denied.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

func (p *OwnershipPolicy) Can(actor Actor, _ Action, resource any) bool {
	ownable, ok := resource.(Ownable)
	if !ok || actor.UserID == "" {
		return false
	}
	return ownable.GetUserID() == actor.UserID
}

// MembershipPolicy lets every member view and update, while only the
// owner may delete.
type MembershipPolicy struct{}

func NewMembershipPolicy() *MembershipPolicy {
	return &MembershipPolicy{}
}

func (p *MembershipPolicy) Can(actor Actor, action Action, resource any) bool {
	member, ok := resource.(Participatory)
	if !ok || actor.UserID == "" {
		return false
	}
	if action == ActionDelete {
		return member.GetUserID() == actor.UserID
	}
	return member.Involves(actor.UserID)
}

// AdminBypassPolicy allows admins everything and defers to inner otherwise.
type AdminBypassPolicy struct {
	inner Policy
}

func NewAdminBypassPolicy(inner Policy) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

func (p *AdminBypassPolicy) Can(actor Actor, action Action, resource any) bool {
	if auth.IsAdmin(actor.Role) {
		return true
	}
	return p.inner.Can(actor, action, resource)
}
