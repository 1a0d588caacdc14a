package model

// AccountIdentity identifies one account row in the server's user table.
// Equality is exact string match on both fields.
type AccountIdentity struct {
	User string `json:"user"`
	Host string `json:"host"`
}

func (a AccountIdentity) String() string {
	return a.User + "@" + a.Host
}

// ConvergeResult is the caller-facing outcome of one convergence run.
type ConvergeResult struct {
	Changed bool   `json:"changed"`
	User    string `json:"user"`
}
