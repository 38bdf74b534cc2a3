package order

import (
	"fmt"
	"strconv"
	"strings"

	"tempo-cli/internal/model"
)

// statusRank maps workflow statuses to their sort position. Anything the
// server sends that we don't recognize (including empty) ranks as open.
func statusRank(s model.Status) int {
	switch s {
	case model.StatusInProgress:
		return 1
	case model.StatusCompleted:
		return 2
	default:
		return 0
	}
}

// CompareStatus orders open < in_progress < completed. Total: unknown and
// missing statuses compare as open. Callers must use a stable sort; ties keep
// their existing order, never date.
func CompareStatus(a, b model.Status) int {
	ra, rb := statusRank(a), statusRank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// NormalizeStatus maps a raw wire value onto the known status set. Unknown
// values come back as StatusOpen plus ok=false so callers can decide whether
// to surface the original.
func NormalizeStatus(s string) (model.Status, bool) {
	switch model.Status(strings.ToLower(strings.TrimSpace(s))) {
	case model.StatusOpen:
		return model.StatusOpen, true
	case model.StatusInProgress:
		return model.StatusInProgress, true
	case model.StatusCompleted:
		return model.StatusCompleted, true
	default:
		return model.StatusOpen, false
	}
}

// CompareTaskID orders two hierarchical dot-notation task ids ("3.2.1").
// Components are compared pairwise numerically left to right; a missing
// component counts as 0, so "1" == "1.0" and "1.1" < "2" < "10".
//
// Total by construction: a malformed component parses as 0 rather than
// failing. Rejecting malformed or duplicate ids is the caller's job (see
// ValidateTaskID); the comparator reports equal ids as equal.
func CompareTaskID(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av = componentValue(as[i])
		}
		if i < len(bs) {
			bv = componentValue(bs[i])
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func componentValue(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseTaskID strictly parses a hierarchical task id into its numeric
// components. Unlike CompareTaskID it rejects anything that is not
// dot-separated non-negative integers.
func ParseTaskID(id string) ([]int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty task id")
	}
	parts := strings.Split(id, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return nil, fmt.Errorf("invalid task id %q: component %q", id, p)
		}
		out = append(out, n)
	}
	return out, nil
}

// ValidateTaskID reports whether id is a well-formed hierarchical task id.
func ValidateTaskID(id string) error {
	_, err := ParseTaskID(id)
	return err
}
