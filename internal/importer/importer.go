// Package importer bulk-loads character sheets from YAML into a sheet store.
package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// Importer writes sheets from a Source into a Store.
type Importer struct {
	source Source
	store  sheet.Store
	out    io.Writer
}

// New constructs an Importer. Progress lines are written to out.
//
// Precondition: source, store and out must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, store sheet.Store, out io.Writer) *Importer {
	return &Importer{source: source, store: store, out: out}
}

// Run loads specs from path, validates every one, then merges each into the
// store. Nothing is written if any spec is invalid.
//
// Postcondition: returns the number of sheets written, or an error.
func (imp *Importer) Run(ctx context.Context, path string) (int, error) {
	overall := time.Now()

	specs, err := imp.source.Load(path)
	if err != nil {
		return 0, fmt.Errorf("loading source: %w", err)
	}
	fmt.Fprintf(imp.out, "load    %d sheet(s) from %s\n", len(specs), path)

	converted := make([][]sheet.Entry, len(specs))
	for i, spec := range specs {
		if converted[i], err = Entries(spec); err != nil {
			return 0, err
		}
	}

	for i, spec := range specs {
		s, err := sheet.Merge(ctx, imp.store, spec.ID, converted[i], spec.Replace)
		if err != nil {
			return i, fmt.Errorf("writing sheet %d: %w", spec.ID, err)
		}
		fmt.Fprintf(imp.out, "wrote   sheet %d  (%d attributes)\n", spec.ID, s.Len())
	}

	fmt.Fprintf(imp.out, "total   %s\n", time.Since(overall).Round(time.Millisecond))
	return len(specs), nil
}
