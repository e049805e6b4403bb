// ABOUTME: Semantic version comparison for ordering schema versions
// ABOUTME: X.Y.Z strings, missing components treated as zero

package schema

import (
	"strconv"
	"strings"
)

// CompareVersions compares two semver strings (X.Y.Z format).
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func CompareVersions(a, b string) int {
	partsA := strings.Split(strings.TrimPrefix(a, "v"), ".")
	partsB := strings.Split(strings.TrimPrefix(b, "v"), ".")

	for i := 0; i < 3; i++ {
		numA, _ := strconv.Atoi(safeIndex(partsA, i))
		numB, _ := strconv.Atoi(safeIndex(partsB, i))
		if numA < numB {
			return -1
		}
		if numA > numB {
			return 1
		}
	}
	return 0
}

func safeIndex(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}
