package priv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/grantsync/internal/model"
)

func TestParseSpec_WildcardAll(t *testing.T) {
	m, err := ParseSpec("*.*:ALL")
	require.NoError(t, err)

	want := model.PrivilegeModel{
		model.WildcardScope: model.NewPrivilegeSet(model.PrivAll),
	}
	assert.True(t, m.Equal(want), "got %v", m)
}

func TestParseSpec_MultipleScopes(t *testing.T) {
	m, err := ParseSpec("db1.*:SELECT,INSERT/db2.tbl:ALL")
	require.NoError(t, err)

	want := model.PrivilegeModel{
		model.WildcardScope: model.NewPrivilegeSet(model.PrivUsage),
		"db1.*":             model.NewPrivilegeSet("SELECT", "INSERT"),
		"db2.tbl":           model.NewPrivilegeSet(model.PrivAll),
	}
	assert.True(t, m.Equal(want), "got %v", m)
}

func TestParseSpec_UppercasesPrivileges(t *testing.T) {
	m, err := ParseSpec("db1.*:select,Insert")
	require.NoError(t, err)
	assert.True(t, m["db1.*"].Contains("SELECT"))
	assert.True(t, m["db1.*"].Contains("INSERT"))
}

func TestParseSpec_ScopeCasePreserved(t *testing.T) {
	m, err := ParseSpec("Db1.Tbl:SELECT")
	require.NoError(t, err)
	_, ok := m["Db1.Tbl"]
	assert.True(t, ok)
	_, ok = m["db1.tbl"]
	assert.False(t, ok)
}

func TestParseSpec_GrantPseudoPrivilege(t *testing.T) {
	m, err := ParseSpec("*.*:ALL,GRANT")
	require.NoError(t, err)
	assert.True(t, m[model.WildcardScope].Contains(model.PrivGrant))
}

func TestParseSpec_Empty(t *testing.T) {
	_, err := ParseSpec("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSpec)
}

func TestParseSpec_MissingSeparator(t *testing.T) {
	_, err := ParseSpec("db1.*")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSpec)
	assert.Contains(t, err.Error(), "db1.*")
}

func TestParseSpec_MissingSeparatorInSecondGroup(t *testing.T) {
	_, err := ParseSpec("db1.*:SELECT/db2.tbl")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSpec)
}

func TestParseSpec_EmptyPrivilege(t *testing.T) {
	_, err := ParseSpec("db1.*:SELECT,")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSpec)
}

func TestParseSpec_ScopeOrderIrrelevant(t *testing.T) {
	a, err := ParseSpec("db1.*:SELECT/db2.*:INSERT")
	require.NoError(t, err)
	b, err := ParseSpec("db2.*:INSERT/db1.*:SELECT")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestFormatSpec_RoundTrip(t *testing.T) {
	m := model.PrivilegeModel{
		model.WildcardScope: model.NewPrivilegeSet(model.PrivUsage),
		"db1.*":             model.NewPrivilegeSet("SELECT", "INSERT"),
		"db2.tbl":           model.NewPrivilegeSet(model.PrivAll, model.PrivGrant),
	}

	parsed, err := ParseSpec(FormatSpec(m))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(m))
}

func TestFormatSpec_Deterministic(t *testing.T) {
	m := model.PrivilegeModel{
		"db2.*": model.NewPrivilegeSet("INSERT", "SELECT"),
		"db1.*": model.NewPrivilegeSet("DROP", "CREATE"),
	}
	assert.Equal(t, "db1.*:CREATE,DROP/db2.*:INSERT,SELECT", FormatSpec(m))
}
