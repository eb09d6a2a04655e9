// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package input turns user-typed text into integers for the algorithms.
//
// # Description
//
// A token is accepted when, after trimming whitespace, it starts with an
// optional sign followed by at least one digit. Anything after the leading
// integer is ignored, so "12px" reads as 12 and "3.9" as 3. Tokens without
// a leading integer are dropped silently.
package input

import (
	"strconv"
	"strings"
)

// Separator splits the values of a list.
const Separator = ","

// ParseIntegers parses a comma-separated list.
//
// # Inputs
//
//   - raw: Text such as "5, 3, 8, 4, 2".
//
// # Outputs
//
//   - []int: The accepted values in input order.
//   - error: ErrNoNumbers if no token was accepted.
//
// # Examples
//
//	values, err := input.ParseIntegers("5,3,x,8")
//	// values == []int{5, 3, 8}
func ParseIntegers(raw string) ([]int, error) {
	var values []int
	for _, tok := range strings.Split(raw, Separator) {
		if v, ok := leadingInt(tok); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, ErrNoNumbers
	}
	return values, nil
}

// ParseInteger parses a single value with the same token rule.
//
// # Outputs
//
//   - int: The leading integer of raw.
//   - error: ErrNotANumber if raw has no leading integer.
func ParseInteger(raw string) (int, error) {
	v, ok := leadingInt(raw)
	if !ok {
		return 0, ErrNotANumber
	}
	return v, nil
}

// leadingInt reads an optional sign and the digits that follow it.
// Values that overflow int are rejected.
func leadingInt(tok string) (int, bool) {
	tok = strings.TrimSpace(tok)

	end := 0
	if end < len(tok) && (tok[end] == '+' || tok[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.Atoi(tok[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format joins values with the list separator, the inverse of ParseIntegers.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, Separator+" ")
}
