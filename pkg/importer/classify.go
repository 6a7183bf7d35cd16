package importer

// Kind tags what one spreadsheet row denotes.
type Kind int

const (
	// KindBlank marks separator rows (no usable name and no budget cell);
	// they are skipped without counting as an error.
	KindBlank Kind = iota
	KindProgram
	KindProject
	// KindAmbiguous marks rows that carry real data but no discriminator
	// column; these are reported as row errors.
	KindAmbiguous
)

// Classify decides whether a row denotes a program or a project. Pure
// function of the row contents: classifying the same row twice yields the
// same Kind.
//
// A row with both "category" and "programId" classifies as a program; the
// category check deliberately comes first.
func Classify(r Row) Kind {
	if r.Get("name") == "" && !r.Has("budget") {
		return KindBlank
	}
	switch {
	case r.Has("category"):
		return KindProgram
	case r.Has("programId"):
		return KindProject
	}
	return KindAmbiguous
}
