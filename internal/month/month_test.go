package month

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	t.Run("zero_pads_month", func(t *testing.T) {
		d := time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local)
		if got := Key(d); got != "2024-01" {
			t.Errorf("expected 2024-01, got %s", got)
		}
	})

	t.Run("december", func(t *testing.T) {
		d := time.Date(2023, 12, 31, 23, 59, 0, 0, time.Local)
		if got := Key(d); got != "2023-12" {
			t.Errorf("expected 2023-12, got %s", got)
		}
	})
}

func TestValid(t *testing.T) {
	valid := []string{"2024-01", "1999-12", "2030-06"}
	for _, s := range valid {
		if !Valid(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"2024-1", "2024-13", "2024-00", "202401", "2024-01-05", "abcd-ef", ""}
	for _, s := range invalid {
		if Valid(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestBack(t *testing.T) {
	t.Run("previous_month", func(t *testing.T) {
		d := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
		if got := Back(d, 1); got != "2024-05" {
			t.Errorf("expected 2024-05, got %s", got)
		}
	})

	t.Run("year_rollover", func(t *testing.T) {
		d := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
		if got := Back(d, 1); got != "2023-12" {
			t.Errorf("expected 2023-12, got %s", got)
		}
	})

	t.Run("multiple_years", func(t *testing.T) {
		d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
		if got := Back(d, 15); got != "2022-12" {
			t.Errorf("expected 2022-12, got %s", got)
		}
	})

	t.Run("zero_is_identity", func(t *testing.T) {
		d := time.Date(2024, 7, 21, 0, 0, 0, 0, time.Local)
		if got := Back(d, 0); got != "2024-07" {
			t.Errorf("expected 2024-07, got %s", got)
		}
	})
}

func TestDaysLeftIn(t *testing.T) {
	t.Run("leap_february", func(t *testing.T) {
		d := time.Date(2024, 2, 15, 12, 0, 0, 0, time.Local)
		if got := DaysLeftIn(d); got != 14 {
			t.Errorf("expected 14 days left (29-15), got %d", got)
		}
	})

	t.Run("non_leap_february", func(t *testing.T) {
		d := time.Date(2023, 2, 15, 12, 0, 0, 0, time.Local)
		if got := DaysLeftIn(d); got != 13 {
			t.Errorf("expected 13 days left (28-15), got %d", got)
		}
	})

	t.Run("last_day_of_month", func(t *testing.T) {
		d := time.Date(2024, 4, 30, 8, 0, 0, 0, time.Local)
		if got := DaysLeftIn(d); got != 0 {
			t.Errorf("expected 0 days left, got %d", got)
		}
	})

	t.Run("thirty_one_day_month", func(t *testing.T) {
		d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
		if got := DaysLeftIn(d); got != 30 {
			t.Errorf("expected 30 days left, got %d", got)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		d, err := Parse("2024-06")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if Key(d) != "2024-06" {
			t.Errorf("round trip failed, got %s", Key(d))
		}
		if d.Day() != 1 {
			t.Errorf("expected first of month, got day %d", d.Day())
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := Parse("junk"); err == nil {
			t.Error("expected error for malformed key")
		}
	})
}
