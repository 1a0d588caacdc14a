package priv

import "github.com/edvin/grantsync/internal/model"

// Reconcile computes the ordered operations that make the account's actual
// privileges match desired, and whether anything changes. Three passes run
// in a fixed order: scopes only in actual are revoked first, so a partial
// failure can never leave the account wider than intended; new scopes are
// granted next; scopes present in both get a full revoke-then-grant replace
// whenever their sets differ at all.
//
// Re-running against the post-application state yields no operations.
func Reconcile(id model.AccountIdentity, desired, actual model.PrivilegeModel) ([]model.Operation, bool) {
	var ops []model.Operation

	for _, scope := range actual.SortedScopes() {
		if _, ok := desired[scope]; !ok {
			ops = append(ops, model.RevokeOp(id, scope))
		}
	}

	for _, scope := range desired.SortedScopes() {
		if _, ok := actual[scope]; !ok {
			ops = append(ops, model.GrantOp(id, scope, desired[scope]))
		}
	}

	for _, scope := range desired.SortedScopes() {
		have, ok := actual[scope]
		if !ok {
			continue
		}
		want := desired[scope]
		if want.Equal(have) {
			continue
		}
		// Full replace rather than a minimal add/remove pair: grant and
		// revoke are set-oriented per statement, and replacing the whole
		// scope cannot leave stale privileges behind.
		ops = append(ops, model.RevokeOp(id, scope), model.GrantOp(id, scope, want))
	}

	return ops, len(ops) > 0
}
