package model

import "sort"

// Scope identifies a database-and-table (or database-and-routine) grant
// target, e.g. "*.*" or "db1.tbl". Opaque and case-sensitive; backtick
// quoting from server output must be stripped before comparison.
type Scope string

// WildcardScope covers all databases and all tables. The server grants at
// least USAGE on it to every account.
const WildcardScope = Scope("*.*")

// Privilege is a single named capability, stored uppercase.
type Privilege string

const (
	// PrivAll stands for every real privilege on a scope.
	PrivAll = Privilege("ALL")
	// PrivUsage is the server's baseline: no privileges, connection allowed.
	PrivUsage = Privilege("USAGE")
	// PrivGrant is not a real privilege; it tracks WITH GRANT OPTION and is
	// translated to/from that clause at the SQL boundary.
	PrivGrant = Privilege("GRANT")
)

// PrivilegeSet is a set of privileges on one scope.
type PrivilegeSet map[Privilege]struct{}

func NewPrivilegeSet(privs ...Privilege) PrivilegeSet {
	s := make(PrivilegeSet, len(privs))
	for _, p := range privs {
		s[p] = struct{}{}
	}
	return s
}

func (s PrivilegeSet) Contains(p Privilege) bool {
	_, ok := s[p]
	return ok
}

func (s PrivilegeSet) Equal(other PrivilegeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Sorted returns the privileges in lexical order for deterministic output.
func (s PrivilegeSet) Sorted() []Privilege {
	out := make([]Privilege, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PrivilegeModel maps each scope an account touches to its privilege set.
// Instances are transient: built fresh per convergence run and discarded.
type PrivilegeModel map[Scope]PrivilegeSet

func (m PrivilegeModel) Equal(other PrivilegeModel) bool {
	if len(m) != len(other) {
		return false
	}
	for scope, set := range m {
		if !set.Equal(other[scope]) {
			return false
		}
	}
	return true
}

// SortedScopes returns the model's scopes in lexical order.
func (m PrivilegeModel) SortedScopes() []Scope {
	out := make([]Scope, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
