package validation

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity scores two names in [0, 1] using normalized Levenshtein
// distance over the lower-cased inputs. 1 means identical.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 1.0
	}

	longest := max(len([]rune(la)), len([]rune(lb)))
	dist := levenshtein.ComputeDistance(la, lb)
	return 1.0 - float64(dist)/float64(longest)
}
