package meta

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ErrExpression is returned for a malformed or unterminated ${...} expression.
var ErrExpression = errors.New("meta: invalid expression")

const envPrefix = "env."

// expand substitutes ${env.NAME} and ${env.NAME:-fallback} in a config
// document. Unset variables without a fallback expand to "".
func expand(document string) (string, error) {
	var b strings.Builder
	rest := document
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		offset := len(document) - len(rest) + start
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated expression at offset %d: %w", offset, ErrExpression)
		}
		value, err := resolve(rest[start+2 : start+end])
		if err != nil {
			return "", fmt.Errorf("expression at offset %d: %w", offset, err)
		}
		b.WriteString(value)
		rest = rest[start+end+1:]
	}
}

func resolve(expr string) (string, error) {
	name, ok := strings.CutPrefix(expr, envPrefix)
	if !ok {
		return "", fmt.Errorf("${%s}: %w", expr, ErrExpression)
	}
	name, fallback, _ := strings.Cut(name, ":-")
	if !isEnvName(name) {
		return "", fmt.Errorf("${%s}: %w", expr, ErrExpression)
	}
	if value, ok := os.LookupEnv(name); ok {
		return value, nil
	}
	return fallback, nil
}

func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
