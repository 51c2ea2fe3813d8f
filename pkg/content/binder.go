package content

import (
	"context"

	"github.com/doodlesbykumbi/folio/pkg/audit"
	"github.com/doodlesbykumbi/folio/pkg/authz"
	"github.com/doodlesbykumbi/folio/pkg/identity"
)

// loadForMutation re-reads the resource and applies the kind's policy.
// It returns the store's not-found error, an authz error, or the fresh resource.
func loadForMutation[T authz.Ownable](ctx context.Context, kind authz.Kind, action string, caller *identity.Identity, id string, find func(context.Context, string) (T, error)) (T, error) {
	return load(ctx, kind, action, caller, id, find, authz.Policy.Authorize)
}

// loadForRead is loadForMutation for kinds whose reads are gated.
func loadForRead[T authz.Ownable](ctx context.Context, kind authz.Kind, caller *identity.Identity, id string, find func(context.Context, string) (T, error)) (T, error) {
	return load(ctx, kind, "read", caller, id, find, authz.Policy.AuthorizeRead)
}

func load[T authz.Ownable](
	ctx context.Context,
	kind authz.Kind,
	action string,
	caller *identity.Identity,
	id string,
	find func(context.Context, string) (T, error),
	decide func(authz.Policy, *identity.Identity, authz.Ownable) error,
) (T, error) {
	var zero T
	if caller == nil {
		return zero, authz.ErrUnauthenticated
	}

	res, err := find(ctx, id)
	if err != nil {
		return zero, err
	}

	policy := authz.For(kind)
	err = decide(policy, caller, res)
	audit.Log(audit.AccessEvent{
		UserID:     caller.ID,
		ClientIP:   identity.ClientIP(ctx),
		Kind:       kind.String(),
		ResourceID: id,
		Action:     action,
		Policy:     policy.Variant(),
		Allowed:    err == nil,
	})
	if err != nil {
		return zero, err
	}
	return res, nil
}

// requireCaller is the create-path guard: the owner reference comes from here only.
func requireCaller(caller *identity.Identity) (string, error) {
	if caller == nil || caller.ID == "" {
		return "", authz.ErrUnauthenticated
	}
	return caller.ID, nil
}

func logMutation(ctx context.Context, caller *identity.Identity, kind authz.Kind, id, operation string) {
	audit.Log(audit.MutationEvent{
		UserID:     caller.ID,
		ClientIP:   identity.ClientIP(ctx),
		Kind:       kind.String(),
		ResourceID: id,
		Operation:  operation,
	})
}
