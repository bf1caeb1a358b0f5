// Package duration parses human duration strings like "1h30m" or "2d".
package duration

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned when no duration tokens are recognized or the
// recognized tokens sum to zero.
var ErrInvalid = errors.New("invalid duration")

var tokenRegex = regexp.MustCompile(`(?i)(\d+)\s*(s|sec|seconds?|m|min|minutes?|h|hr|hours?|d|days?|w|weeks?)\s*`)

// Parse sums all recognized tokens in the input. Tokens compose freely
// ("1h30m", "2d 12h", "1w2d"); unrecognized text between tokens is
// ignored the same way the token scan skips it.
func Parse(input string) (time.Duration, error) {
	matches := tokenRegex.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return 0, ErrInvalid
	}

	var totalSeconds int64
	for _, match := range matches {
		value, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, ErrInvalid
		}
		switch strings.ToLower(match[2])[0] {
		case 's':
			totalSeconds += value
		case 'm':
			totalSeconds += value * 60
		case 'h':
			totalSeconds += value * 3600
		case 'd':
			totalSeconds += value * 86400
		case 'w':
			totalSeconds += value * 604800
		}
	}

	if totalSeconds <= 0 {
		return 0, ErrInvalid
	}
	return time.Duration(totalSeconds) * time.Second, nil
}
