package converge

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edvin/grantsync/internal/metrics"
	"github.com/edvin/grantsync/internal/model"
	"github.com/edvin/grantsync/internal/priv"
)

const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// ErrPasswordRequired means a present request for a brand-new account came
// without a password. Accounts are never created passwordless.
var ErrPasswordRequired = errors.New("password required to create account")

// Executor is the server-side collaborator a run reads from and writes to.
// *mysql.Executor satisfies it.
type Executor interface {
	Exists(ctx context.Context, id model.AccountIdentity) (bool, error)
	PasswordChanged(ctx context.Context, id model.AccountIdentity, newPassword string) (bool, error)
	ShowGrants(ctx context.Context, id model.AccountIdentity) ([]string, error)
	Apply(ctx context.Context, ops []model.Operation) error
}

// Request is the caller-facing contract for one convergence run.
type Request struct {
	User     string
	Host     string
	State    string // present or absent
	Password string
	// Privileges is a specification string; when empty, privileges are left
	// untouched and only the account row and password are managed.
	Privileges string
	// DryRun computes the verdict without applying any operation.
	DryRun bool
}

// Engine runs one account convergence at a time: read live state, diff
// against the request, apply the resulting operations in order.
type Engine struct {
	ex     Executor
	logger zerolog.Logger
}

func NewEngine(ex Executor, logger zerolog.Logger) *Engine {
	return &Engine{
		ex:     ex,
		logger: logger.With().Str("component", "converge").Logger(),
	}
}

func (e *Engine) Run(ctx context.Context, req Request) (model.ConvergeResult, error) {
	result := model.ConvergeResult{User: req.User}
	id := model.AccountIdentity{User: req.User, Host: req.Host}

	var ops []model.Operation
	var err error

	switch req.State {
	case StateAbsent:
		ops, err = e.planAbsent(ctx, id)
	case StatePresent:
		ops, err = e.planPresent(ctx, id, req)
	default:
		return result, fmt.Errorf("invalid state %q", req.State)
	}
	if err != nil {
		return result, err
	}

	result.Changed = len(ops) > 0
	if !result.Changed {
		return result, nil
	}

	for _, op := range ops {
		metrics.Operations.WithLabelValues(string(op.Kind)).Inc()
	}

	if req.DryRun {
		for _, op := range ops {
			e.logger.Info().
				Str("account", id.String()).
				Str("op", string(op.Kind)).
				Str("scope", string(op.Scope)).
				Msg("dry run: operation not applied")
		}
		return result, nil
	}

	if err := e.ex.Apply(ctx, ops); err != nil {
		return model.ConvergeResult{User: req.User}, err
	}
	return result, nil
}

func (e *Engine) planAbsent(ctx context.Context, id model.AccountIdentity) ([]model.Operation, error) {
	exists, err := e.ex.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Deleting an absent account is a no-op, not an error.
		return nil, nil
	}
	// The server drops the account's grants with the row; no revoke pass.
	return []model.Operation{{Kind: model.OpDropAccount, Identity: id}}, nil
}

func (e *Engine) planPresent(ctx context.Context, id model.AccountIdentity, req Request) ([]model.Operation, error) {
	// Parse the specification before touching the server, so a malformed
	// spec aborts with no statement sent.
	var desired model.PrivilegeModel
	if req.Privileges != "" {
		var err error
		desired, err = priv.ParseSpec(req.Privileges)
		if err != nil {
			return nil, err
		}
	}

	exists, err := e.ex.Exists(ctx, id)
	if err != nil {
		return nil, err
	}

	if !exists {
		if req.Password == "" {
			return nil, fmt.Errorf("%w: %s", ErrPasswordRequired, id)
		}
		ops := []model.Operation{{Kind: model.OpCreateAccount, Identity: id, Password: req.Password}}
		if desired != nil {
			// A fresh account starts with the implicit USAGE baseline, so
			// only the add pass produces work.
			baseline := model.PrivilegeModel{
				model.WildcardScope: model.NewPrivilegeSet(model.PrivUsage),
			}
			grantOps, _ := priv.Reconcile(id, desired, baseline)
			ops = append(ops, grantOps...)
		}
		return ops, nil
	}

	var ops []model.Operation

	if req.Password != "" {
		changed, err := e.ex.PasswordChanged(ctx, id, req.Password)
		if err != nil {
			return nil, err
		}
		if changed {
			ops = append(ops, model.Operation{Kind: model.OpSetPassword, Identity: id, Password: req.Password})
		}
	}

	if desired != nil {
		lines, err := e.ex.ShowGrants(ctx, id)
		if err != nil {
			return nil, err
		}
		actual, err := priv.ParseGrants(lines)
		if err != nil {
			return nil, err
		}
		reconcileOps, _ := priv.Reconcile(id, desired, actual)
		ops = append(ops, reconcileOps...)
	}

	return ops, nil
}
