package request

type Converge struct {
	User       string `json:"user" validate:"required,mysql_name"`
	Host       string `json:"host" validate:"required"`
	State      string `json:"state" validate:"required,oneof=present absent"`
	Password   string `json:"password" validate:"omitempty"`
	Privileges string `json:"privileges" validate:"omitempty"`
	DryRun     bool   `json:"dry_run"`
}
