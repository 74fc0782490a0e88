// Package input holds helpers for the TUI's text prompts.
package input

import (
	"strings"
)

// MatchingSlots returns the codes that start with input, ignoring case,
// in their original order.
func MatchingSlots(input string, codes []string) []string {
	prefix := strings.ToUpper(strings.TrimSpace(input))
	if prefix == "" {
		return nil
	}
	matches := make([]string, 0, 8)
	for _, code := range codes {
		if strings.HasPrefix(strings.ToUpper(code), prefix) {
			matches = append(matches, code)
		}
	}
	return matches
}

// Autocomplete extends input to the longest prefix shared by every match.
// It reports false when no code matches.
func Autocomplete(input string, codes []string) (string, bool) {
	matches := MatchingSlots(input, codes)
	if len(matches) == 0 {
		return "", false
	}
	common := matches[0]
	for _, m := range matches[1:] {
		n := 0
		for n < len(common) && n < len(m) && common[n] == m[n] {
			n++
		}
		common = common[:n]
	}
	return common, true
}

// ParseLabel splits prompt text such as "Maths #core" into a label and a tag.
// The tag is the last word starting with '#'.
func ParseLabel(value string) (label, tag string) {
	fields := strings.Fields(value)
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.HasPrefix(fields[i], "#") && len(fields[i]) > 1 {
			tag = fields[i][1:]
			fields = append(fields[:i], fields[i+1:]...)
			break
		}
	}
	return strings.Join(fields, " "), tag
}
