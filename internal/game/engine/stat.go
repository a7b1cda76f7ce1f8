package engine

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/keeper/internal/game/sheet"
)

// Sentinel names reported by GetStat in place of an attribute name.
const (
	StatNotFoundName  = "属性未找到"
	SheetNotFoundName = "文件未找到"
	// NotFoundValue accompanies either sentinel name.
	NotFoundValue = -1
)

// StatReading is a single attribute value.
type StatReading struct {
	Name  string
	Value int
}

// Found reports whether the reading names a real attribute.
func (r StatReading) Found() bool {
	return r.Name != StatNotFoundName && r.Name != SheetNotFoundName
}

// MarshalJSON encodes the reading as [name, value].
func (r StatReading) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.Value})
}

// GetStat reads one attribute. It never fails: a missing attribute or sheet is
// reported through the sentinel names with NotFoundValue.
func (e *Engine) GetStat(ctx context.Context, id, name string) StatReading {
	_, s, err := e.load(ctx, id)
	if err != nil {
		if !errors.Is(err, sheet.ErrNotFound) {
			e.logger.Warn("loading sheet for stat read",
				zap.String("character", id),
				zap.Error(err),
			)
		}
		return StatReading{Name: SheetNotFoundName, Value: NotFoundValue}
	}
	v, ok := s.Get(name)
	if !ok {
		return StatReading{Name: StatNotFoundName, Value: NotFoundValue}
	}
	return StatReading{Name: name, Value: v}
}
