package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCoerceProgram(t *testing.T) {
	prog, err := CoerceProgram(Row{
		"name":        "P1",
		"description": "a program",
		"category":    "innovation",
		"status":      "pending",
		"budget":      "1000.50",
		"startDate":   "2024-01-01",
		"endDate":     "2024-12-31",
	})
	require.NoError(t, err)
	require.Equal(t, "P1", prog.Name)
	require.Equal(t, "a program", prog.Description)
	require.Equal(t, "pending", prog.Status)
	require.True(t, prog.Budget.Equal(decimal.RequireFromString("1000.50")))
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prog.StartDate)
	require.NotNil(t, prog.EndDate)
}

func TestCoerceProgramDefaults(t *testing.T) {
	prog, err := CoerceProgram(Row{"name": "P1", "category": "digital", "budget": "0"})
	require.NoError(t, err)
	require.Equal(t, "active", prog.Status)
	require.Empty(t, prog.Description)
	require.Nil(t, prog.EndDate)
	// absent startDate defaults to the current date, midnight UTC
	require.WithinDuration(t, time.Now(), prog.StartDate, 24*time.Hour)
	require.Equal(t, time.UTC, prog.StartDate.Location())
	require.Zero(t, prog.StartDate.Hour())
	require.Zero(t, prog.StartDate.Minute())
}

func TestCoerceProgramFailures(t *testing.T) {
	cases := []struct {
		name string
		row  Row
		want string
	}{
		{"missing name", Row{"category": "digital", "budget": "10"}, "name is required"},
		{"bad category", Row{"name": "P", "category": "magic", "budget": "10"}, "invalid category"},
		{"bad status", Row{"name": "P", "category": "digital", "status": "paused", "budget": "10"}, "invalid status"},
		{"non-numeric budget", Row{"name": "P", "category": "digital", "budget": "abc"}, "invalid budget"},
		{"negative budget", Row{"name": "P", "category": "digital", "budget": "-5"}, "invalid budget"},
		{"missing budget", Row{"name": "P", "category": "digital"}, "invalid budget"},
		{"bad start", Row{"name": "P", "category": "digital", "budget": "10", "startDate": "soon"}, "invalid startDate"},
		{"bad end", Row{"name": "P", "category": "digital", "budget": "10", "startDate": "2024-01-01", "endDate": "later"}, "invalid endDate"},
		{"end before start", Row{"name": "P", "category": "digital", "budget": "10", "startDate": "2024-06-01", "endDate": "2024-01-01"}, "endDate precedes startDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CoerceProgram(tc.row)
			require.EqualError(t, err, tc.want)
		})
	}
}

func TestCoerceProject(t *testing.T) {
	proj, err := CoerceProject(Row{
		"name":      "Task1",
		"programId": "7",
		"budget":    "500",
		"progress":  "40",
		"startDate": "2024-01-01",
		"deadline":  "2024-02-01",
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), proj.ProgramID)
	require.Equal(t, 40, proj.Progress)
	require.Equal(t, "not-started", proj.Status)
	require.Equal(t, "medium", proj.Priority)
}

func TestCoerceProjectFailures(t *testing.T) {
	base := Row{"name": "T", "programId": "1", "budget": "10", "startDate": "2024-01-01", "deadline": "2024-02-01"}
	with := func(k, v string) Row {
		row := Row{}
		for key, val := range base {
			row[key] = val
		}
		if v == "" {
			delete(row, k)
		} else {
			row[k] = v
		}
		return row
	}

	cases := []struct {
		name string
		row  Row
		want string
	}{
		{"bad programId", with("programId", "abc"), "invalid programId"},
		{"zero programId", with("programId", "0"), "invalid programId"},
		{"progress too big", with("progress", "150"), "invalid progress"},
		{"progress negative", with("progress", "-1"), "invalid progress"},
		{"progress non-numeric", with("progress", "half"), "invalid progress"},
		{"bad priority", with("priority", "urgent"), "invalid priority"},
		{"bad status", with("status", "paused"), "invalid status"},
		{"missing deadline", with("deadline", ""), "invalid deadline"},
		{"bad deadline", with("deadline", "whenever"), "invalid deadline"},
		{"deadline before start", with("deadline", "2023-12-01"), "deadline precedes startDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CoerceProject(tc.row)
			require.EqualError(t, err, tc.want)
		})
	}
}

func TestParseDateLayouts(t *testing.T) {
	for _, raw := range []string{"2024-03-05", "2024/03/05", "03-05-24", "3/5/24", "3/5/2024"} {
		got, ok := ParseDate(raw)
		require.True(t, ok, raw)
		require.Equal(t, time.March, got.Month(), raw)
		require.Equal(t, 5, got.Day(), raw)
	}
	_, ok := ParseDate("yesterday")
	require.False(t, ok)
}
