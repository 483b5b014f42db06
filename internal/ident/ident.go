// Package ident derives the next issue identifier from an existing
// collection when the backend does not assign one.
package ident

import (
	"strconv"
	"strings"
)

// DefaultPrefix is the textual prefix for generated identifiers.
const DefaultPrefix = "BD-"

// Next returns prefix + (max+1), where max is the largest trailing
// decimal run found across all ids. Ids without a trailing digit run
// contribute no candidate. The maximum is global across the whole
// collection — a mix of short sequential ids and timestamp-derived ids
// must continue from the largest value, never from a per-prefix max.
func Next(prefix string, ids []string) string {
	var max uint64
	for _, id := range ids {
		n, ok := trailingNumber(id)
		if ok && n > max {
			max = n
		}
	}
	return prefix + strconv.FormatUint(max+1, 10)
}

// trailingNumber extracts the contiguous run of decimal digits at the
// end of id. Returns false if id does not end in a digit or the run
// does not fit in a uint64.
func trailingNumber(id string) (uint64, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	run := id[i:]
	if run == "" {
		return 0, false
	}
	run = strings.TrimLeft(run, "0")
	if run == "" {
		return 0, true // all zeros
	}
	n, err := strconv.ParseUint(run, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
