package importer

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// StatLine normalises a stats string to upload form.
//
// Postcondition: result starts with sheet.UploadPrefix and is idempotent
// (StatLine(StatLine(s)) == StatLine(s)).
func StatLine(stats string) string {
	s := strings.TrimSpace(stats)
	s = strings.TrimSpace(strings.TrimPrefix(s, strings.TrimSpace(sheet.UploadPrefix)))
	return sheet.UploadPrefix + s
}

// Entries validates spec and converts its stat line to sheet entries.
func Entries(spec SheetSpec) ([]sheet.Entry, error) {
	if err := sheet.ValidateID(spec.ID); err != nil {
		return nil, describe(spec.ID, err)
	}
	entries, err := sheet.ParseUpload(StatLine(spec.Stats))
	if err != nil {
		return nil, describe(spec.ID, err)
	}
	return entries, nil
}

func describe(id int, err error) error {
	msg, ok := gameerr.Message(err)
	if !ok {
		msg = err.Error()
	}
	return fmt.Errorf("sheet %d: %s: %w", id, msg, err)
}
