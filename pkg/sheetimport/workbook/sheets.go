package workbook

import (
	"strings"
	"sync"
)

// sheetList is the lazily materialized sheet index of one document.
// All fields are guarded by mu.
type sheetList struct {
	mu     sync.Mutex
	built  bool
	sheets []*Sheet
	byName map[string]*Sheet

	// removedSince records a removal not yet persisted by a write.
	removedSince bool
}

// invalidate forces a rebuild on the next ensureBuilt. Callers hold mu.
func (l *sheetList) invalidate() {
	l.built = false
}

// ensureBuilt materializes the list from the workbook if it was invalidated.
// Handles are reused by name so callers keep valid references across
// rebuilds; handles whose sheet disappeared are marked removed. Callers hold mu.
func (l *sheetList) ensureBuilt(d *Document) {
	if l.built {
		return
	}
	names := d.file.GetSheetList()
	prev := l.byName
	l.sheets = make([]*Sheet, 0, len(names))
	l.byName = make(map[string]*Sheet, len(names))
	for i, name := range names {
		s, ok := prev[name]
		if !ok {
			s = &Sheet{doc: d, name: name}
		}
		s.index = i
		l.sheets = append(l.sheets, s)
		l.byName[name] = s
	}
	for name, s := range prev {
		if _, ok := l.byName[name]; !ok {
			s.removed = true
			s.index = -1
		}
	}
	l.built = true
}

// find returns the sheet whose name matches name ignoring case, the way
// the workbook itself compares sheet names. Callers hold mu and have built
// the list.
func (l *sheetList) find(name string) (*Sheet, bool) {
	if s, ok := l.byName[name]; ok {
		return s, true
	}
	for _, s := range l.sheets {
		if strings.EqualFold(s.name, name) {
			return s, true
		}
	}
	return nil, false
}
