// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets feeds credentials into the process environment from a
// dotenv file and from a directory of plain-text files. Each file in the
// directory is one secret: the filename is the key name and the trimmed
// contents are the value.
//
// Supported key files: infobel-username, infobel-password.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// EnvName maps a secret filename to its environment variable name:
// "infobel-username" becomes "INFOBEL_USERNAME".
func EnvName(file string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(file))
}

// Export sets an environment variable for each secret whose variable is not
// already set, and returns the variable names it set in sorted order.
func Export(secrets map[string]string) ([]string, error) {
	var set []string
	for file, value := range secrets {
		name := EnvName(file)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return set, fmt.Errorf("exporting secret %s: %w", file, err)
		}
		set = append(set, name)
	}
	sort.Strings(set)
	return set, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment.
// Variables that are already set keep their values. A missing file is not
// an error; the boolean reports whether a file was read.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("loading env file %s: %w", path, err)
	}
	return true, nil
}
