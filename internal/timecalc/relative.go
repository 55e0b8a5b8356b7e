package timecalc

import (
	"strconv"
	"strings"
	"time"
)

type unit struct {
	suffix  string
	seconds int64
}

var shortUnits = [...]unit{
	{"w", 7 * 24 * 60 * 60},
	{"d", 24 * 60 * 60},
	{"h", 60 * 60},
	{"m", 60},
	{"s", 1},
}

// FormatShort describes target relative to now, e.g. "in 1h 30m" or "2d ago".
// Only whole seconds count. Equal instants format as "ago".
func FormatShort(target, now time.Time) string {
	future := target.After(now)
	remaining := wholeSeconds(target, now)
	if remaining < 0 {
		remaining = -remaining
	}

	var b strings.Builder
	if future {
		b.WriteString("in ")
	}
	for _, u := range shortUnits {
		count := remaining / u.seconds
		if count == 0 {
			continue
		}
		remaining %= u.seconds
		b.WriteString(strconv.FormatInt(count, 10))
		b.WriteString(u.suffix)
		b.WriteByte(' ')
	}
	if !future {
		b.WriteString("ago")
	}

	return strings.TrimSpace(b.String())
}

// wholeSeconds returns target-now in seconds, truncated toward zero. It works on
// unix seconds so spans beyond the range of time.Duration stay exact.
func wholeSeconds(target, now time.Time) int64 {
	secs := target.Unix() - now.Unix()
	nanos := target.Nanosecond() - now.Nanosecond()
	switch {
	case secs > 0 && nanos < 0:
		secs--
	case secs < 0 && nanos > 0:
		secs++
	}
	return secs
}
