package priv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/grantsync/internal/model"
)

func TestParseGrants_AllWithGrantOption(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT ALL PRIVILEGES ON *.* TO 'bob'@'localhost' WITH GRANT OPTION",
	})
	require.NoError(t, err)

	want := model.PrivilegeModel{
		model.WildcardScope: model.NewPrivilegeSet(model.PrivAll, model.PrivGrant),
	}
	assert.True(t, m.Equal(want), "got %v", m)
}

func TestParseGrants_UsageBaseline(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT USAGE ON *.* TO 'app'@'%'",
	})
	require.NoError(t, err)
	assert.True(t, m[model.WildcardScope].Equal(model.NewPrivilegeSet(model.PrivUsage)))
}

func TestParseGrants_StripsBackticks(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT SELECT, INSERT ON `db1`.`tbl` TO 'app'@'%'",
	})
	require.NoError(t, err)

	set, ok := m["db1.tbl"]
	require.True(t, ok, "scope should be unquoted, got %v", m)
	assert.True(t, set.Equal(model.NewPrivilegeSet("SELECT", "INSERT")))
}

func TestParseGrants_IdentifiedByPassword(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT USAGE ON *.* TO 'app'@'%' IDENTIFIED BY PASSWORD '*94BDCEBE19083CE2A1F959FD02F964C7AF4CFC29'",
	})
	require.NoError(t, err)
	assert.True(t, m[model.WildcardScope].Equal(model.NewPrivilegeSet(model.PrivUsage)))
	assert.False(t, m[model.WildcardScope].Contains(model.PrivGrant))
}

func TestParseGrants_IdentifiedByPasswordWithGrantOption(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT ALL PRIVILEGES ON *.* TO 'root'@'localhost' IDENTIFIED BY PASSWORD '*hash' WITH GRANT OPTION",
	})
	require.NoError(t, err)
	assert.True(t, m[model.WildcardScope].Contains(model.PrivGrant))
	assert.True(t, m[model.WildcardScope].Contains(model.PrivAll))
}

func TestParseGrants_MultipleRows(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT USAGE ON *.* TO 'app'@'%'",
		"GRANT SELECT, UPDATE, DELETE ON `db1`.* TO 'app'@'%'",
		"GRANT ALL PRIVILEGES ON `db2`.* TO 'app'@'%' WITH GRANT OPTION",
	})
	require.NoError(t, err)

	want := model.PrivilegeModel{
		model.WildcardScope: model.NewPrivilegeSet(model.PrivUsage),
		"db1.*":             model.NewPrivilegeSet("SELECT", "UPDATE", "DELETE"),
		"db2.*":             model.NewPrivilegeSet(model.PrivAll, model.PrivGrant),
	}
	assert.True(t, m.Equal(want), "got %v", m)
}

func TestParseGrants_TrailingSemicolon(t *testing.T) {
	m, err := ParseGrants([]string{
		"GRANT USAGE ON *.* TO 'app'@'%';",
	})
	require.NoError(t, err)
	_, ok := m[model.WildcardScope]
	assert.True(t, ok)
}

func TestParseGrants_UnparsableLineAbortsParse(t *testing.T) {
	_, err := ParseGrants([]string{
		"GRANT USAGE ON *.* TO 'app'@'%'",
		"GRANT PROXY ON ''@'' TO bad format here",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparsableGrant)
}

func TestParseGrants_EmptyReport(t *testing.T) {
	m, err := ParseGrants(nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}
