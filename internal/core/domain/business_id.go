package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BusinessIDWidth is the zero-padded width of the numeric suffix.
const BusinessIDWidth = 6

// FormatBusinessID renders n as <PREFIX>-<zero padded n>, e.g. EMP-000123.
func FormatBusinessID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, BusinessIDWidth, n)
}

// ParseBusinessID extracts the numeric suffix of a business id. Anything that
// is not <prefix>-<digits> is rejected.
func ParseBusinessID(prefix, id string) (int64, error) {
	suffix, ok := strings.CutPrefix(id, prefix+"-")
	if !ok || suffix == "" {
		return 0, fmt.Errorf("business id %q: missing %s- prefix", id, prefix)
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("business id %q: malformed suffix", id)
	}
	return n, nil
}
