// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
)

// InfinityToken is the textual form of Infinity in mutation records and result files.
const InfinityToken = "inf"

// ParseTime parses a decimal time value or the InfinityToken.
func ParseTime(s string) (Time, error) {
	if s == InfinityToken {
		return Infinity, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("core: parse time %q: %w", s, err)
	}

	return Time(n), nil
}

// FormatTime renders t in decimal, or as InfinityToken when t == Infinity.
func FormatTime(t Time) string {
	if t == Infinity {
		return InfinityToken
	}

	return strconv.FormatInt(int64(t), 10)
}

// String implements fmt.Stringer.
func (t Time) String() string { return FormatTime(t) }

// String renders the interval as [start,end).
func (iv Interval) String() string {
	return "[" + FormatTime(iv.Start) + "," + FormatTime(iv.End) + ")"
}
