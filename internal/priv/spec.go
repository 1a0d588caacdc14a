package priv

import (
	"fmt"
	"strings"

	"github.com/edvin/grantsync/internal/model"
)

// ParseSpec parses a compact privilege specification of the form
// "scope1:priv1,priv2/scope2:priv3". Scopes keep their case; privileges are
// uppercased. If the wildcard scope is absent it is added with USAGE, since
// the server grants that implicitly to every account.
func ParseSpec(spec string) (model.PrivilegeModel, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty specification", ErrMalformedSpec)
	}

	m := make(model.PrivilegeModel)
	for _, group := range strings.Split(spec, "/") {
		scope, privList, ok := strings.Cut(group, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no scope separator", ErrMalformedSpec, group)
		}
		if scope == "" {
			return nil, fmt.Errorf("%w: %q has an empty scope", ErrMalformedSpec, group)
		}

		set := make(model.PrivilegeSet)
		for _, p := range strings.Split(privList, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil, fmt.Errorf("%w: %q has an empty privilege", ErrMalformedSpec, group)
			}
			set[model.Privilege(strings.ToUpper(p))] = struct{}{}
		}
		m[model.Scope(scope)] = set
	}

	if _, ok := m[model.WildcardScope]; !ok {
		m[model.WildcardScope] = model.NewPrivilegeSet(model.PrivUsage)
	}

	return m, nil
}

// FormatSpec renders a model back into the specification grammar, with
// scopes and privileges in lexical order so output is deterministic.
// ParseSpec(FormatSpec(m)) yields m modulo wildcard-scope synthesis.
func FormatSpec(m model.PrivilegeModel) string {
	groups := make([]string, 0, len(m))
	for _, scope := range m.SortedScopes() {
		privs := m[scope].Sorted()
		names := make([]string, len(privs))
		for i, p := range privs {
			names[i] = string(p)
		}
		groups = append(groups, string(scope)+":"+strings.Join(names, ","))
	}
	return strings.Join(groups, "/")
}
