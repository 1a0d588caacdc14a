package priv

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edvin/grantsync/internal/model"
)

// grantLineRe matches one SHOW GRANTS row. The IDENTIFIED BY PASSWORD
// clause is absent for passwordless accounts; the grant-option suffix is
// absent unless the account may re-grant on that scope.
var grantLineRe = regexp.MustCompile(
	`^GRANT (.+) ON (.+) TO '[^']*'@'[^']*'(?: IDENTIFIED BY PASSWORD '[^']*')?( WITH GRANT OPTION)?$`)

// ParseGrants parses the server's SHOW GRANTS rows for one account into a
// privilege model. The server never repeats a scope across rows for one
// account, so each row contributes its own scope key. A row that does not
// match the expected shape aborts the whole parse.
func ParseGrants(lines []string) (model.PrivilegeModel, error) {
	m := make(model.PrivilegeModel)
	for _, line := range lines {
		line = strings.TrimRight(line, "; ")
		match := grantLineRe.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnparsableGrant, line)
		}

		set := make(model.PrivilegeSet)
		// The server renders the list with comma-space separators.
		for _, p := range strings.Split(match[1], ", ") {
			if p == "ALL PRIVILEGES" {
				p = string(model.PrivAll)
			}
			set[model.Privilege(p)] = struct{}{}
		}
		if match[3] != "" {
			set[model.PrivGrant] = struct{}{}
		}

		scope := model.Scope(strings.ReplaceAll(match[2], "`", ""))
		m[scope] = set
	}
	return m, nil
}
