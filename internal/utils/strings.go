// Package utils holds small parsing helpers shared by the HTTP layer.
package utils

import "strings"

// ParseCSV splits a comma-separated query value into trimmed, non-empty
// items. Blank input yields nil.
func ParseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
