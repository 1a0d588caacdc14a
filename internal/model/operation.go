package model

// OpKind tags an Operation.
type OpKind string

const (
	OpCreateAccount = OpKind("create-account")
	OpSetPassword   = OpKind("set-password")
	OpDropAccount   = OpKind("drop-account")
	OpGrant         = OpKind("grant")
	OpRevoke        = OpKind("revoke")
)

// Operation is one pending change against the server. Operations are data:
// the reconciler produces them in order and the executor applies them.
type Operation struct {
	Kind     OpKind          `json:"kind"`
	Identity AccountIdentity `json:"identity"`
	Scope    Scope           `json:"scope,omitempty"`
	// Privileges is set for grant operations only.
	Privileges PrivilegeSet `json:"privileges,omitempty"`
	// Password is set for create-account and set-password; never logged.
	Password string `json:"-"`
}

func GrantOp(id AccountIdentity, scope Scope, privs PrivilegeSet) Operation {
	return Operation{Kind: OpGrant, Identity: id, Scope: scope, Privileges: privs}
}

func RevokeOp(id AccountIdentity, scope Scope) Operation {
	return Operation{Kind: OpRevoke, Identity: id, Scope: scope}
}
