package mysql

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/edvin/grantsync/internal/model"
)

// validScopeRe matches "db.tbl" style grant targets, including the * and %
// wildcards the server accepts. Scope text is interpolated into statements,
// so anything else is rejected.
var validScopeRe = regexp.MustCompile(`^[0-9A-Za-z_$%*]+\.[0-9A-Za-z_$%*]+$`)

// validPrivRe matches privilege names as the server renders them, e.g.
// "SELECT" or "CREATE TEMPORARY TABLES".
var validPrivRe = regexp.MustCompile(`^[A-Z]+(?: [A-Z]+)*$`)

// Server error codes for revoking a grant that does not exist.
const (
	errNonExistingGrant      = 1141
	errNonExistingTableGrant = 1147
)

// Executor applies account operations to the server and answers the read
// queries the convergence run needs.
type Executor struct {
	db     DB
	logger zerolog.Logger
}

func NewExecutor(db DB, logger zerolog.Logger) *Executor {
	return &Executor{
		db:     db,
		logger: logger.With().Str("component", "executor").Logger(),
	}
}

// Exists reports whether the account row is present in the user table.
func (e *Executor) Exists(ctx context.Context, id model.AccountIdentity) (bool, error) {
	var count int
	err := e.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM mysql.user WHERE user = ? AND host = ?",
		id.User, id.Host,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", id, err)
	}
	return count > 0, nil
}

// PasswordChanged reports whether setting newPassword would alter the
// account's stored hash. The hash is computed by the server itself so the
// comparison matches its version-specific algorithm and salt exactly.
func (e *Executor) PasswordChanged(ctx context.Context, id model.AccountIdentity, newPassword string) (bool, error) {
	var current string
	err := e.db.QueryRow(ctx,
		"SELECT password FROM mysql.user WHERE user = ? AND host = ?",
		id.User, id.Host,
	).Scan(&current)
	if err != nil {
		return false, fmt.Errorf("read password hash for %s: %w", id, err)
	}

	var hashed string
	if err := e.db.QueryRow(ctx, "SELECT PASSWORD(?)", newPassword).Scan(&hashed); err != nil {
		return false, fmt.Errorf("hash password for %s: %w", id, err)
	}

	return current != hashed, nil
}

// ShowGrants returns the server's raw grant report rows for the account.
func (e *Executor) ShowGrants(ctx context.Context, id model.AccountIdentity) ([]string, error) {
	// SHOW GRANTS does not accept placeholders, even client-side bound ones.
	stmt := fmt.Sprintf("SHOW GRANTS FOR '%s'@'%s'", escapeString(id.User), escapeString(id.Host))
	rows, err := e.db.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("show grants for %s: %w", id, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan grant row for %s: %w", id, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grant rows for %s: %w", id, err)
	}
	return lines, nil
}

// Apply executes the operations in order, then flushes the privilege cache
// if anything ran. A failure aborts mid-list; re-running the convergence
// from a fresh live-state read is the recovery path.
func (e *Executor) Apply(ctx context.Context, ops []model.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	for _, op := range ops {
		if err := e.apply(ctx, op); err != nil {
			return err
		}
	}

	if err := e.db.Exec(ctx, "FLUSH PRIVILEGES"); err != nil {
		return fmt.Errorf("flush privileges: %w", err)
	}
	return nil
}

func (e *Executor) apply(ctx context.Context, op model.Operation) error {
	id := op.Identity

	switch op.Kind {
	case model.OpCreateAccount:
		e.logger.Info().Str("account", id.String()).Msg("creating account")
		if err := e.db.Exec(ctx, "CREATE USER ?@? IDENTIFIED BY ?", id.User, id.Host, op.Password); err != nil {
			return fmt.Errorf("create account %s: %w", id, err)
		}

	case model.OpSetPassword:
		e.logger.Info().Str("account", id.String()).Msg("updating password")
		if err := e.db.Exec(ctx, "SET PASSWORD FOR ?@? = PASSWORD(?)", id.User, id.Host, op.Password); err != nil {
			return fmt.Errorf("set password for %s: %w", id, err)
		}

	case model.OpDropAccount:
		e.logger.Info().Str("account", id.String()).Msg("dropping account")
		if err := e.db.Exec(ctx, "DROP USER ?@?", id.User, id.Host); err != nil {
			return fmt.Errorf("drop account %s: %w", id, err)
		}

	case model.OpGrant:
		return e.grant(ctx, op)

	case model.OpRevoke:
		return e.revoke(ctx, op)

	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}

	return nil
}

func (e *Executor) grant(ctx context.Context, op model.Operation) error {
	id := op.Identity
	if err := validateScope(op.Scope); err != nil {
		return err
	}

	// GRANT is not a real privilege: it leaves the list and comes back as
	// the WITH GRANT OPTION clause. An otherwise empty list becomes USAGE.
	var names []string
	for _, p := range op.Privileges.Sorted() {
		if p == model.PrivGrant {
			continue
		}
		if err := validatePrivilege(p); err != nil {
			return err
		}
		names = append(names, string(p))
	}
	if len(names) == 0 {
		names = []string{string(model.PrivUsage)}
	}

	stmt := fmt.Sprintf("GRANT %s ON %s TO ?@?", strings.Join(names, ", "), op.Scope)
	if op.Privileges.Contains(model.PrivGrant) {
		stmt += " WITH GRANT OPTION"
	}

	e.logger.Info().
		Str("account", id.String()).
		Str("scope", string(op.Scope)).
		Strs("privileges", names).
		Msg("granting privileges")

	if err := e.db.Exec(ctx, stmt, id.User, id.Host); err != nil {
		return fmt.Errorf("grant on %s to %s: %w", op.Scope, id, err)
	}
	return nil
}

func (e *Executor) revoke(ctx context.Context, op model.Operation) error {
	id := op.Identity
	if err := validateScope(op.Scope); err != nil {
		return err
	}

	e.logger.Info().
		Str("account", id.String()).
		Str("scope", string(op.Scope)).
		Msg("revoking privileges")

	// The grant option is revoked by its own statement. The account may not
	// hold it on this scope; the server reporting "no such grant" already
	// confirms the desired end-state.
	stmt := fmt.Sprintf("REVOKE GRANT OPTION ON %s FROM ?@?", op.Scope)
	if err := e.db.Exec(ctx, stmt, id.User, id.Host); err != nil && !isNonExistingGrant(err) {
		return fmt.Errorf("revoke grant option on %s from %s: %w", op.Scope, id, err)
	}

	stmt = fmt.Sprintf("REVOKE ALL PRIVILEGES ON %s FROM ?@?", op.Scope)
	if err := e.db.Exec(ctx, stmt, id.User, id.Host); err != nil && !isNonExistingGrant(err) {
		return fmt.Errorf("revoke privileges on %s from %s: %w", op.Scope, id, err)
	}
	return nil
}

func isNonExistingGrant(err error) bool {
	var myErr *mysqldriver.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return myErr.Number == errNonExistingGrant || myErr.Number == errNonExistingTableGrant
}

func validateScope(scope model.Scope) error {
	if !validScopeRe.MatchString(string(scope)) {
		return fmt.Errorf("invalid scope %q", scope)
	}
	return nil
}

func validatePrivilege(p model.Privilege) error {
	if !validPrivRe.MatchString(string(p)) {
		return fmt.Errorf("invalid privilege %q", p)
	}
	return nil
}

// escapeString makes a value safe inside a single-quoted SQL literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
