package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// mysqlNameRe matches account names the server accepts unquoted.
var mysqlNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{1,32}$`)

func init() {
	validate.RegisterValidation("mysql_name", func(fl validator.FieldLevel) bool {
		return mysqlNameRe.MatchString(fl.Field().String())
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
