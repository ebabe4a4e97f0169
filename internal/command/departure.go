// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"strings"
	"time"
)

// ParseWeekday matches a full weekday name case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}

// NextDeparture returns the next occurrence of day at clock ("15:04") after
// now. A day matching today's weekday rolls over to next week.
func NextDeparture(now time.Time, day, clock string) (time.Time, error) {
	wd, err := ParseWeekday(day)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure time %q: must be HH:MM", clock)
	}

	ahead := int(wd - now.Weekday())
	if ahead <= 0 {
		ahead += 7
	}
	d := now.AddDate(0, 0, ahead)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
