package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// parseDotEnv reads dotenv-style KEY=VALUE lines from r and returns the parsed
// mapping plus a warning per line that could not be parsed. Blank lines and
// #-comments are skipped. Values keep one layer of matching surrounding quotes
// stripped. Later occurrences of a key win.
func parseDotEnv(r io.Reader) (map[string]string, []string) {
	vars := make(map[string]string)
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			warnings = append(warnings, fmt.Sprintf("invalid line %d in env file: %q", lineNo, line))
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			warnings = append(warnings, fmt.Sprintf("invalid line %d in env file: empty key", lineNo))
			continue
		}

		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		warnings = append(warnings, fmt.Sprintf("error reading env file: %v", err))
	}

	return vars, warnings
}

// unquote strips one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

// loadDotEnv loads the file at path into the process environment, overwriting
// existing values so the file is authoritative for local development. A
// missing file is reported but leaves the environment untouched. Returned
// warnings describe skipped lines.
func loadDotEnv(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		log.Errorf("Could not load env file %s: %v", path, err)
		return nil
	}
	defer f.Close()

	vars, warnings := parseDotEnv(f)
	for key, value := range vars {
		if err := os.Setenv(key, value); err != nil {
			warnings = append(warnings, fmt.Sprintf("failed to set %s: %v", key, err))
		}
	}

	log.Debugf("Loaded %d variables from %s", len(vars), path)
	return warnings
}
