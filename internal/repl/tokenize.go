package repl

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// tokenize splits a command line into words with shell quoting rules:
// single or double quotes group words, and a backslash escapes the next
// character outside single quotes.
func tokenize(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parse command line: %w", err)
	}
	return words, nil
}
