package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edvin/grantsync/internal/config"
	"github.com/edvin/grantsync/internal/converge"
	"github.com/edvin/grantsync/internal/logging"
	"github.com/edvin/grantsync/internal/mysql"
)

func main() {
	user := flag.String("user", "", "Account username (required)")
	host := flag.String("host", "localhost", "Account host pattern")
	state := flag.String("state", "present", "Desired state: present or absent")
	password := flag.String("password", "", "Account password (required when creating)")
	privileges := flag.String("priv", "", "Privilege specification, e.g. 'db1.*:SELECT,INSERT/db2.tbl:ALL'")
	check := flag.Bool("check", false, "Report what would change without applying anything")

	loginUser := flag.String("login-user", "", "Login user for the server (overrides env and option file)")
	loginPassword := flag.String("login-password", "", "Login password for the server")
	loginHost := flag.String("login-host", "", "Server host")
	loginPort := flag.Int("login-port", 0, "Server port")
	loginSocket := flag.String("login-socket", "", "Unix socket path")
	optionFile := flag.String("config", "", "MySQL option file for login credentials")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "error: -user is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *loginUser != "" {
		cfg.LoginUser = *loginUser
	}
	if *loginPassword != "" {
		cfg.LoginPassword = *loginPassword
	}
	if *loginHost != "" {
		cfg.LoginHost = *loginHost
	}
	if *loginPort != 0 {
		cfg.LoginPort = *loginPort
	}
	if *loginSocket != "" {
		cfg.LoginSocket = *loginSocket
	}
	if *optionFile != "" {
		cfg.OptionFile = *optionFile
	}
	cfg.ResolveCredentials()

	logger := logging.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := mysql.Connect(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	engine := converge.NewEngine(mysql.NewExecutor(conn, logger), logger)

	result, err := engine.Run(ctx, converge.Request{
		User:       *user,
		Host:       *host,
		State:      *state,
		Password:   *password,
		Privileges: *privileges,
		DryRun:     *check,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	json.NewEncoder(os.Stdout).Encode(result)
}
