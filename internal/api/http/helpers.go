package http

import (
	"strconv"
	"strings"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// serverErrorMessage extracts a best-effort message for opaque 500s.
func serverErrorMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return "internal server error"
	}
	return err.Error()
}
