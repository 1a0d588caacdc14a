package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	// Login credentials for the target server. Resolution order: explicit
	// env values, then the option file, then root with an empty password.
	LoginUser     string
	LoginPassword string
	LoginHost     string
	LoginPort     int
	LoginSocket   string

	// OptionFile is a MySQL client option file ([client] section) consulted
	// for any login field left unset.
	OptionFile string

	HTTPListenAddr string
	LogLevel       string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("MYSQL_LOGIN_PORT", "3306"))
	if err != nil {
		port = 3306
	}

	cfg := &Config{
		LoginUser:      getEnv("MYSQL_LOGIN_USER", ""),
		LoginPassword:  getEnv("MYSQL_LOGIN_PASSWORD", ""),
		LoginHost:      getEnv("MYSQL_LOGIN_HOST", "localhost"),
		LoginPort:      port,
		LoginSocket:    getEnv("MYSQL_LOGIN_SOCKET", ""),
		OptionFile:     getEnv("MYSQL_OPTION_FILE", defaultOptionFile()),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// ResolveCredentials fills unset login fields from the option file, then
// falls back to the default super-user identity with an empty password.
// Callers apply any flag overrides before resolving.
func (c *Config) ResolveCredentials() {
	if c.LoginUser == "" && c.OptionFile != "" {
		if opts, err := ParseOptionFile(c.OptionFile); err == nil {
			c.LoginUser = opts["user"]
			if c.LoginPassword == "" {
				c.LoginPassword = opts["password"]
			}
			if h, ok := opts["host"]; ok && c.LoginHost == "localhost" {
				c.LoginHost = h
			}
			if p, ok := opts["port"]; ok {
				if n, err := strconv.Atoi(p); err == nil {
					c.LoginPort = n
				}
			}
			if c.LoginSocket == "" {
				c.LoginSocket = opts["socket"]
			}
		}
	}

	if c.LoginUser == "" {
		c.LoginUser = "root"
	}
}

func defaultOptionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".my.cnf")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
