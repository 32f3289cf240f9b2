package auth

import "context"

const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInventory = "inventory"
	RoleFinance   = "finance"
	RoleEmployee  = "employee"
)

// Actor is the authenticated caller a workflow records as created_by.
type Actor struct {
	ID   int
	Role string
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// HasRole reports whether the actor holds one of roles.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func IsKnownRole(role string) bool {
	return Actor{Role: role}.HasRole(RoleAdmin, RoleManager, RoleInventory, RoleFinance, RoleEmployee)
}
