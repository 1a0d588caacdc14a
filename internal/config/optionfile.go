package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseOptionFile reads the [client] section of a MySQL option file and
// returns its key/value pairs. Other sections are ignored. Values may be
// wrapped in single or double quotes, which are stripped.
func ParseOptionFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open option file: %w", err)
	}
	defer f.Close()

	opts := make(map[string]string)
	inClient := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inClient = line == "[client]"
			continue
		}
		if !inClient {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			// Bare flags like "no-beep" carry no credential information.
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `'"`)
		opts[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read option file: %w", err)
	}

	return opts, nil
}
