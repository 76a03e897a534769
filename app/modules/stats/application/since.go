package statsservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ParseSince turns a user-supplied window bound into a timestamp. It accepts
// RFC 3339, plain dates, and natural-language phrases like "last month" or
// "3 weeks ago".
func ParseSince(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty since value")
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse since value %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize since value %q", input)
	}
	return r.Time, nil
}
