package importer

import (
	"fmt"

	"ecodev/models"
)

// Store persists coerced rows. Implementations stamp the owning user and
// must return an error (never panic) on constraint violations such as an
// unresolved program reference.
type Store interface {
	CreateProgram(p *models.Program) error
	CreateProject(p *models.Project) error
}

// Report is the outcome of one import batch.
type Report struct {
	RecordsImported int
	Errors          []string
}

// Status maps the report onto a ledger status. The row loop never produces
// "error"; that status belongs to the fast-fail path for undecodable files.
func (r Report) Status() string {
	if len(r.Errors) == 0 {
		return models.ImportStatusSuccess
	}
	return models.ImportStatusPartial
}

func (r *Report) fail(n int, reason string) {
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", n, reason))
}

// Run drives the classify/coerce/persist pipeline over the rows of one
// uploaded file, in file order. Processing is strictly sequential: a project
// row may reference a program created earlier in the same file. No row's
// failure stops the batch; every failure becomes one 1-indexed error string.
func Run(rows []Row, store Store) Report {
	var rep Report
	for i, row := range rows {
		n := i + 1
		switch Classify(row) {
		case KindBlank:
			continue
		case KindAmbiguous:
			rep.fail(n, "could not classify row")
		case KindProgram:
			prog, err := CoerceProgram(row)
			if err != nil {
				rep.fail(n, err.Error())
				continue
			}
			if err := store.CreateProgram(prog); err != nil {
				rep.fail(n, err.Error())
				continue
			}
			rep.RecordsImported++
		case KindProject:
			proj, err := CoerceProject(row)
			if err != nil {
				rep.fail(n, err.Error())
				continue
			}
			if err := store.CreateProject(proj); err != nil {
				rep.fail(n, err.Error())
				continue
			}
			rep.RecordsImported++
		}
	}
	return rep
}
