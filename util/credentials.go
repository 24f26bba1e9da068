package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// EarthdataCredentials holds the NASA EARTHDATA login used by the ASF
// download service. The on-disk format is the aria2c-compatible
// key=value file the original toolchain uses:
//
//	http-user=<USER>
//	http-passwd=<PW>
type EarthdataCredentials struct {
	User     string
	Password string
}

// ParseEarthdataCredentials parses credentials from key=value lines
func ParseEarthdataCredentials(data []byte) (*EarthdataCredentials, error) {
	creds := EarthdataCredentials{}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("Malformed credentials line: %q", line)
		}
		switch strings.TrimSpace(key) {
		case "http-user":
			creds.User = strings.TrimSpace(value)
		case "http-passwd":
			creds.Password = strings.TrimSpace(value)
		}
	}
	if creds.User == "" || creds.Password == "" {
		return nil, fmt.Errorf("Credentials file is missing http-user or http-passwd")
	}
	return &creds, nil
}

// ReadEarthdataCredentials reads and parses a credentials file
func ReadEarthdataCredentials(path string) (*EarthdataCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEarthdataCredentials(data)
}
