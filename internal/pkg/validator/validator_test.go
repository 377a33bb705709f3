package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"550e8400-e29b-41d4-a716-446655440000",
		"6BA7B810-9DAD-11D1-80B4-00C04FD430C8",
		"0188e3f2-91a8-7cde-89ab-0123456789ab",
	}
	invalid := []string{
		"",
		"not-a-uuid",
		"550e8400-e29b-41d4-a716-44665544000",
		"550e8400e29b41d4a716446655440000",
		"550e8400-e29b-01d4-a716-446655440000",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-10")
	if !ok {
		t.Fatal("IsValidDate(2026-03-10) = false, want true")
	}
	if date.Year() != 2026 || date.Month() != 3 || date.Day() != 10 {
		t.Errorf("IsValidDate parsed wrong date: %v", date)
	}

	invalid := []string{"", "10-03-2026", "2026/03/10", "2026-13-01", "yesterday"}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"WEB", "REMOTE"}
	if !IsInSlice("WEB", slice) {
		t.Error("IsInSlice(WEB) = false, want true")
	}
	if IsInSlice("web", slice) {
		t.Error("IsInSlice(web) = true, want false")
	}
	if IsInSlice("", slice) {
		t.Error("IsInSlice(empty) = true, want false")
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"", "2024-01-15", "2024-01-15 10:30:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "reason", Message: "reason is required"},
	}

	if errs.Error() != "start_date: start_date is required; reason: reason is required" {
		t.Errorf("unexpected Error(): %q", errs.Error())
	}

	m := errs.ToMap()
	if len(m) != 2 || m["reason"] != "reason is required" {
		t.Errorf("unexpected ToMap(): %v", m)
	}
}
