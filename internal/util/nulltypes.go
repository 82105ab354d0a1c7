// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used on the wire and in forms.
const DateLayout = "2006-01-02"

// NullStringFromPtr converts a pointer to string into sql.NullString.
// Returns a valid NullString if the pointer is non-nil, otherwise returns an invalid one.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr != nil {
		return sql.NullString{String: *ptr, Valid: true}
	}
	return sql.NullString{}
}

// PtrFromNullString is the inverse of NullStringFromPtr.
func PtrFromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ParseNullInt64 parses an optional integer field.
// Empty input and zero both yield an invalid NullInt64; anything that is not
// an integer is an error.
func ParseNullInt64(s string) (sql.NullInt64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullInt64{}, nil
	}
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("invalid integer %q", s)
	}
	if val == 0 {
		return sql.NullInt64{}, nil
	}
	return sql.NullInt64{Int64: val, Valid: true}, nil
}

// ParseNullDecimal parses an optional decimal amount with the same empty and
// zero handling as ParseNullInt64.
func ParseNullDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q", s)
	}
	if val.IsZero() {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(val), nil
}

// ParseNullDate parses an optional calendar date in DateLayout. A full
// RFC 3339 timestamp is accepted and truncated to its date. Empty input and
// "0" yield an invalid NullTime.
func ParseNullDate(s string) (sql.NullTime, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return sql.NullTime{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

// FormatNullDate renders a valid NullTime in DateLayout.
func FormatNullDate(nt sql.NullTime) *string {
	if !nt.Valid {
		return nil
	}
	s := nt.Time.Format(DateLayout)
	return &s
}
