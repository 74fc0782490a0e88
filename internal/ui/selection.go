package ui

import (
	"strings"

	"github.com/javiermolinar/slotpick/internal/timetable"
)

// parseSlotList splits arguments such as "A1,L2" "E2" into slot codes,
// keeping their order.
func parseSlotList(values []string) []timetable.SlotCode {
	var out []timetable.SlotCode
	for _, v := range values {
		for _, part := range strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			out = append(out, timetable.SlotCode(part))
		}
	}
	return out
}

// applySelection toggles slots in order on an empty selection.
func applySelection(engine *timetable.Engine, values []string) (timetable.Selection, error) {
	return engine.Apply(timetable.Selection{}, parseSlotList(values)...)
}
