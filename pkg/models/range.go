/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is the dashboard's trailing window token.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"

	DefaultRange = Range7d
)

// ParseRange accepts "7d"/"30d" and the bare day counts "7"/"30".
func ParseRange(token string) (Range, error) {
	t := strings.ToLower(strings.TrimSpace(token))

	switch t {
	case "":
		return DefaultRange, nil
	case "7d", "7":
		return Range7d, nil
	case "30d", "30":
		return Range30d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, token)
	}
}

// RangeForDays maps a day window back to its token.
func RangeForDays(days int) (Range, error) {
	return ParseRange(strconv.Itoa(days))
}

// Days converts the token to the numeric window used by backend queries.
func (r Range) Days() int {
	if r == Range30d {
		return 30
	}

	return 7
}

func (r Range) String() string {
	return string(r)
}
