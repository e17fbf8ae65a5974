package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Retry(ctx, 3, time.Hour, func() error {
		attempts++
		return errors.New("transient error")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("Retry called fn %d times after cancel, want 1", attempts)
	}
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return ts
}

func TestIsTradingMoment(t *testing.T) {
	cal := NewTradingCalendar(nil)

	cases := []struct {
		moment string
		want   bool
	}{
		{"2023-04-14 09:50:55", true},  // Friday, morning session
		{"2023-04-15 09:50:55", false}, // Saturday
		{"2023-04-14 09:00:55", false}, // before open
		{"2023-04-14 09:30:00", false}, // open boundary is exclusive
		{"2023-04-14 09:30:01", true},
		{"2023-04-14 11:30:00", false}, // close boundary is exclusive
		{"2023-04-14 12:15:00", false}, // lunch break
		{"2023-04-14 13:00:00", false},
		{"2023-04-14 14:59:59", true},
		{"2023-04-14 15:00:00", false},
		{"2023-05-01 10:00:00", false}, // Labour Day holiday
		{"2024-10-01 10:00:00", false}, // National Day holiday
	}
	for _, c := range cases {
		if got := cal.IsTradingMoment(mustParse(t, c.moment)); got != c.want {
			t.Errorf("IsTradingMoment(%s) = %v, want %v", c.moment, got, c.want)
		}
	}
}

func TestExtraHolidays(t *testing.T) {
	cal := NewTradingCalendar([]string{"2027-02-08"})
	if cal.IsTradingMoment(mustParse(t, "2027-02-08 10:00:00")) {
		t.Error("configured extra holiday should not be a trading moment")
	}
	if !cal.IsTradingMoment(mustParse(t, "2027-02-09 10:00:00")) {
		t.Error("2027-02-09 10:00:00 should be a trading moment")
	}
}
