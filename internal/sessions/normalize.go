package sessions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// Row is one raw record as read from a source, before trimming.
type Row struct {
	Line     int // position in the source, 1-based, header excluded
	Subject  string
	Teacher  string
	Division string
	Day      string
	Time     string
	Room     string
}

// SkippedRow records a source row that did not make it into the Store.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// LoadReport summarises one load.
type LoadReport struct {
	Source  string       `json:"source"`
	Read    int          `json:"read"`
	Kept    int          `json:"kept"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// record is what a row must look like after normalisation to be kept.
type record struct {
	Subject  string `validate:"required"`
	Teacher  string
	Division string `validate:"required"`
	Day      string `validate:"required"`
	Time     string `validate:"required"`
	Room     string `validate:"required"`
}

// normalizer is not safe for concurrent use; cases.Caser keeps state.
type normalizer struct {
	validate *validator.Validate
	title    cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		title:    cases.Title(language.English),
	}
}

// normalize trims every field, NFC-normalises it and capitalises the day.
// It fails when an essential field is blank.
func (n *normalizer) normalize(row Row) (models.Session, error) {
	rec := record{
		Subject:  clean(row.Subject),
		Teacher:  clean(row.Teacher),
		Division: clean(row.Division),
		Day:      n.title.String(clean(row.Day)),
		Time:     clean(row.Time),
		Room:     clean(row.Room),
	}

	if err := n.validate.Struct(rec); err != nil {
		return models.Session{}, describe(err)
	}

	return models.Session{
		Subject:  rec.Subject,
		Teacher:  rec.Teacher,
		Division: rec.Division,
		Day:      rec.Day,
		Time:     rec.Time,
		Room:     rec.Room,
	}, nil
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("missing %s", strings.Join(missing, ", "))
}
