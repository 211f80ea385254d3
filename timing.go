package pagemedia

import (
	"math"
	"strconv"
	"strings"
)

// ParseSeconds parses a media timestamp into seconds. It accepts plain
// seconds ("12.5", "75") and clock form ("1:02", "1:02:03.5").
func ParseSeconds(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	var total float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		// Only the last component may carry a fraction.
		if i < len(parts)-1 && strings.Contains(part, ".") {
			return 0, false
		}
		// Minutes and seconds in clock form stay below 60.
		if i > 0 && v >= 60 {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}
