package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"ecodev/models"
)

// memStore mimics the persistence contract: sequential program ids, and
// project creates fail when the referenced program was never created.
type memStore struct {
	programs []*models.Program
	projects []*models.Project
}

func (s *memStore) CreateProgram(p *models.Program) error {
	p.ID = uint(len(s.programs) + 1)
	s.programs = append(s.programs, p)
	return nil
}

func (s *memStore) CreateProject(p *models.Project) error {
	for _, prog := range s.programs {
		if prog.ID == p.ProgramID {
			s.projects = append(s.projects, p)
			return nil
		}
	}
	return errors.New("program not found")
}

func TestRunImportsProgramThenProject(t *testing.T) {
	rows := []Row{
		{"name": "P1", "category": "innovation", "budget": "1000", "startDate": "2024-01-01"},
		{"name": "Task1", "programId": "1", "budget": "500", "startDate": "2024-01-01", "deadline": "2024-02-01"},
	}
	store := &memStore{}
	rep := Run(rows, store)

	require.Equal(t, 2, rep.RecordsImported)
	require.Empty(t, rep.Errors)
	require.Equal(t, models.ImportStatusSuccess, rep.Status())
	require.Len(t, store.programs, 1)
	require.Len(t, store.projects, 1)
	require.Equal(t, uint(1), store.projects[0].ProgramID)
}

func TestRunSkipsBlankRows(t *testing.T) {
	rows := []Row{
		{},
		{"name": "P1", "category": "digital", "budget": "10", "startDate": "2024-01-01"},
		{},
	}
	rep := Run(rows, &memStore{})
	require.Equal(t, 1, rep.RecordsImported)
	require.Empty(t, rep.Errors)
}

func TestRunReportsAmbiguousRow(t *testing.T) {
	rep := Run([]Row{{"name": "X", "budget": "10"}}, &memStore{})
	require.Zero(t, rep.RecordsImported)
	require.Equal(t, []string{"Row 1: could not classify row"}, rep.Errors)
	require.Equal(t, models.ImportStatusPartial, rep.Status())
}

func TestRunIsolatesBadRow(t *testing.T) {
	const total = 5
	const bad = 3
	rows := make([]Row, 0, total)
	for i := 1; i <= total; i++ {
		budget := "100"
		if i == bad {
			budget = "-5"
		}
		rows = append(rows, Row{
			"name":      fmt.Sprintf("P%d", i),
			"category":  "formation",
			"budget":    budget,
			"startDate": "2024-01-01",
		})
	}
	rep := Run(rows, &memStore{})
	require.Equal(t, total-1, rep.RecordsImported)
	require.Equal(t, []string{fmt.Sprintf("Row %d: invalid budget", bad)}, rep.Errors)
}

func TestRunPartialOnBadBudget(t *testing.T) {
	rep := Run([]Row{{"name": "P1", "category": "innovation", "budget": "abc", "startDate": "2024-01-01"}}, &memStore{})
	require.Zero(t, rep.RecordsImported)
	require.Equal(t, []string{"Row 1: invalid budget"}, rep.Errors)
	require.Equal(t, models.ImportStatusPartial, rep.Status())
}

func TestRunReportsDanglingProgramReference(t *testing.T) {
	rows := []Row{
		{"name": "Orphan", "programId": "99", "budget": "10", "startDate": "2024-01-01", "deadline": "2024-02-01"},
		{"name": "P1", "category": "digital", "budget": "10", "startDate": "2024-01-01"},
	}
	rep := Run(rows, &memStore{})
	// persistence failure surfaces as a row error and the batch continues
	require.Equal(t, 1, rep.RecordsImported)
	require.Equal(t, []string{"Row 1: program not found"}, rep.Errors)
}

// failingStore simulates a store hitting a transient persistence failure.
type failingStore struct {
	memStore
}

func (s *failingStore) CreateProgram(p *models.Program) error {
	return errors.New("create failed")
}

func TestRunSurfacesStoreFailureVerbatim(t *testing.T) {
	rows := []Row{
		{"name": "P1", "category": "digital", "budget": "10", "startDate": "2024-01-01"},
	}
	rep := Run(rows, &failingStore{})
	require.Zero(t, rep.RecordsImported)
	// a store failure keeps its own reason; it must not masquerade as a
	// missing program reference
	require.Equal(t, []string{"Row 1: create failed"}, rep.Errors)
	require.Equal(t, models.ImportStatusPartial, rep.Status())
}

func TestRunForwardReferenceUnsupported(t *testing.T) {
	// project rows referencing a program later in the same file fail at
	// persist time; rows are never reordered
	rows := []Row{
		{"name": "Early task", "programId": "1", "budget": "10", "startDate": "2024-01-01", "deadline": "2024-02-01"},
		{"name": "P1", "category": "digital", "budget": "10", "startDate": "2024-01-01"},
	}
	rep := Run(rows, &memStore{})
	require.Equal(t, 1, rep.RecordsImported)
	require.Len(t, rep.Errors, 1)
	require.Contains(t, rep.Errors[0], "Row 1:")
}
