// Package sqlite writes parsed formulas to a SQLite catalogue database
package sqlite

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/earth-metabolome-initiative/molecular-formulas/pkg/formula"
)

// headerDateFormat is the ISO 8601 date stored in HeaderTable.
const headerDateFormat = "2006-01-02"

// Writer handles writing formulas to SQLite catalogue files.
type Writer struct {
	db          *sql.DB
	outputPath  string
	formulaStmt *sql.Stmt
	formulaID   int
}

// NewWriter creates a new SQLite writer.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		formulaID:  1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the catalogue schema.
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS FormulaTable (
		FormulaId INTEGER PRIMARY KEY,
		Name TEXT,
		Input TEXT,
		Canonical TEXT,
		Hill TEXT,
		Composition TEXT,
		MolarMass DOUBLE,
		MonoisotopicMass DOUBLE,
		Charge INTEGER,
		HasCharge BOOL,
		MassOverCharge DOUBLE,
		HillSorted BOOL,
		Components INTEGER
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT
	);
	`

	if _, err := w.db.Exec(schema); err != nil {
		return errors.Wrap(err, "creating tables")
	}
	return nil
}

// prepareStatements prepares SQL statements for batch insertion.
func (w *Writer) prepareStatements() error {
	var err error
	w.formulaStmt, err = w.db.Prepare(`
		INSERT INTO FormulaTable (
			FormulaId, Name, Input, Canonical, Hill, Composition,
			MolarMass, MonoisotopicMass, Charge, HasCharge,
			MassOverCharge, HillSorted, Components
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "preparing formula statement")
	}
	return nil
}

// WriteFormula writes a single parsed formula to the catalogue. Masses
// that are undefined for the formula (residuals, unknown isotopes,
// absent charge) are stored as NULL.
func (w *Writer) WriteFormula(name, input string, f *formula.Formula) error {
	charge, hasCharge := f.Charge()

	var molar, mono, mz interface{}
	if m, err := f.MolarMass(); err == nil {
		molar = m
	}
	if m, err := f.MonoisotopicMass(); err == nil {
		mono = m
	}
	if m, err := f.MassOverCharge(); err == nil {
		mz = m
	}

	_, err := w.formulaStmt.Exec(
		w.formulaID,
		name,
		input,
		f.String(),
		f.Render(formula.RenderHill),
		composition(f),
		molar,
		mono,
		charge,
		hasCharge,
		mz,
		f.IsHillSorted(),
		len(f.Subformulas()),
	)
	if err != nil {
		return errors.Wrapf(err, "inserting formula %q", input)
	}

	w.formulaID++
	return nil
}

// composition renders the flattened multiset as "H:2,O:1" in
// first-appearance order.
func composition(f *formula.Formula) string {
	var b strings.Builder
	for i, e := range f.Elements().Entries() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Atom.Text(f.Data()))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(e.Count, 10))
	}
	return b.String()
}

// Finalize writes the header table and closes the database.
func (w *Writer) Finalize() error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description)
		VALUES (?, ?, ?)
	`, 1, time.Now().Format(headerDateFormat), "")
	if err != nil {
		return errors.Wrap(err, "inserting header")
	}

	if w.formulaStmt != nil {
		w.formulaStmt.Close()
	}

	if err := w.db.Close(); err != nil {
		return errors.Wrap(err, "closing database")
	}
	return nil
}

// Close closes the database connection (alias for Finalize).
func (w *Writer) Close() error {
	return w.Finalize()
}
