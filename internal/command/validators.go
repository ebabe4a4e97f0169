// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"time"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// WeekdayValidator accepts an empty value or a full weekday name, any case.
func WeekdayValidator(value any) error {
	s := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseWeekday(s)
	return err
}

// ClockValidator accepts an empty value or a 24h HH:MM time.
func ClockValidator(value any) error {
	s := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return errors.New("must be HH:MM")
	}
	return nil
}
