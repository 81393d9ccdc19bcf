package helpers

import (
	"strings"
)

const (
	arnRegionIndex     = 3
	arnRepositoryIndex = 5
)

func LastSplitElement(value, separator string) string {
	parts := strings.Split(value, separator)
	return parts[len(parts)-1]
}

func RegionFromARN(arn string) string {
	return arnField(arn, arnRegionIndex)
}

func RepositoryNameFromARN(arn string) string {
	return arnField(arn, arnRepositoryIndex)
}

func arnField(arn string, index int) string {
	parts := strings.Split(arn, ":")
	if index >= len(parts) {
		return ""
	}
	return parts[index]
}

// TrimTo hard-cuts value to at most maxRunes characters, no ellipsis.
func TrimTo(value string, maxRunes int) string {
	runes := []rune(value)
	if len(runes) <= maxRunes {
		return value
	}
	return string(runes[:maxRunes])
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
