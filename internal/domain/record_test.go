package domain

import (
	"testing"
	"time"

	"github.com/IamHazels/employee-tool/internal/apperror"
)

func TestIsExpiredBoundary(t *testing.T) {
	record := DisciplinaryRecord{ExpiryDate: baseTime}

	if record.IsExpired(baseTime.Add(-time.Nanosecond)) {
		t.Errorf("expected active before expiry")
	}
	if record.IsExpired(baseTime) {
		t.Errorf("expected active at exactly the expiry instant")
	}
	if !record.IsExpired(baseTime.Add(time.Nanosecond)) {
		t.Errorf("expected expired after expiry")
	}
}

func TestExpiryStatus(t *testing.T) {
	if got := ExpiryStatus(baseTime, baseTime.Add(-time.Hour)); got != StatusActive {
		t.Errorf("status = %s, want active", got)
	}
	if got := ExpiryStatus(baseTime, baseTime.Add(time.Hour)); got != StatusExpired {
		t.Errorf("status = %s, want expired", got)
	}
}

func TestScenarioVerbalWarningExpiresAfterThirtyOneDays(t *testing.T) {
	employee, err := NewEmployee("alice", "sales", "e001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := employee.AddDisciplinaryRecord("late", LevelVerbal, 1, baseTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.IsExpired(baseTime) {
		t.Errorf("expected active immediately after creation")
	}
	if !record.IsExpired(baseTime.Add(31 * 24 * time.Hour)) {
		t.Errorf("expected expired after 31 days")
	}
	if employee.CountDisciplinaries() != 1 {
		t.Errorf("count = %d, want 1", employee.CountDisciplinaries())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want Level
	}{
		{"Counselling", LevelCounselling},
		{"councelling", LevelCounselling},
		{"VERBAL", LevelVerbal},
		{" written ", LevelWritten},
		{"final", LevelFinal},
		{"5", LevelDismissal},
		{"2", LevelVerbal},
	}

	for _, c := range cases {
		got, err := ParseLevel(c.raw)
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", c.raw, got, c.want)
		}
	}

	for _, raw := range []string{"", "severe", "0", "6"} {
		if _, err := ParseLevel(raw); apperror.GetCode(err) != apperror.CodeInvalidInput {
			t.Errorf("ParseLevel(%q): expected invalid input, got %v", raw, err)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Fatalf("levels out of order: %s >= %s", levels[i-1], levels[i])
		}
	}
	if LevelDismissal.String() != "dismissal" {
		t.Fatalf("unexpected name %q", LevelDismissal.String())
	}
}
