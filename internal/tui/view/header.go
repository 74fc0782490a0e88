package view

// HeaderLabels builds column labels for a grid with one column per day,
// marking the focused day.
func HeaderLabels(corner string, days []string, focus int) ([]string, map[int]bool) {
	labels := make([]string, 0, len(days)+1)
	focusCols := make(map[int]bool)

	labels = append(labels, corner)
	for i, day := range days {
		if i == focus {
			day = "*" + day + "*"
			focusCols[i+1] = true
		}
		labels = append(labels, day)
	}

	return labels, focusCols
}
