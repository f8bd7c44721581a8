// Package units holds the unit synonym table and the conversion operators
// the generated command lines use. The table is an explicit configuration
// object passed to processors at construction; there is no module-level
// mutable state.
package units

import (
	"fmt"
	"strings"
)

// Table maps unit spellings to canonical names and conversion pairs to the
// cdo operator fragment that performs the conversion.
type Table struct {
	synonyms    map[string]string
	conversions map[[2]string]string
}

// DefaultTable returns the table covering the unit spellings and conversions
// that occur in the supported climate data products.
func DefaultTable() *Table {
	return &Table{
		synonyms: map[string]string{
			"k":          "K",
			"kelvin":     "K",
			"degk":       "K",
			"c":          "degC",
			"degc":       "degC",
			"celsius":    "degC",
			"kg m-2 s-1": "kg m-2 s-1",
			"kg/m2/s":    "kg m-2 s-1",
			"mm/day":     "mm day-1",
			"mm day-1":   "mm day-1",
			"pa":         "Pa",
			"hpa":        "hPa",
		},
		conversions: map[[2]string]string{
			{"K", "degC"}:              "-subc,273.15",
			{"degC", "K"}:              "-addc,273.15",
			{"kg m-2 s-1", "mm day-1"}: "-mulc,86400",
			{"mm day-1", "kg m-2 s-1"}: "-divc,86400",
			{"Pa", "hPa"}:              "-divc,100",
			{"hPa", "Pa"}:              "-mulc,100",
		},
	}
}

// Normalize resolves a unit spelling to its canonical name. Unknown units
// are returned unchanged so diagnostics show what the plan actually said.
func (t *Table) Normalize(unit string) string {
	if canonical, ok := t.synonyms[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return canonical
	}
	return unit
}

// Conversion returns the cdo operator fragment converting from one unit to
// another, or an empty string when the units are already equivalent. An
// unsupported pair is an error: silently skipping a conversion would produce
// numerically wrong artifacts.
func (t *Table) Conversion(from, to string) (string, error) {
	if from == "" || to == "" {
		return "", nil
	}
	cf, ct := t.Normalize(from), t.Normalize(to)
	if cf == ct {
		return "", nil
	}
	if op, ok := t.conversions[[2]string{cf, ct}]; ok {
		return op, nil
	}
	return "", fmt.Errorf("unsupported unit conversion from %q to %q", from, to)
}
