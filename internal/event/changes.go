package event

// Changes reports how one run's events differ from the previous run's.
// Matching is by ID, so a broadcast whose channel or description changed
// without moving counts as unchanged. Both slices come back in
// (Start, Summary) order.
func Changes(previous, current []*Event) (added, removed []*Event) {
	prevByID := make(map[string]bool, len(previous))
	for _, evt := range previous {
		prevByID[evt.ID] = true
	}
	currByID := make(map[string]bool, len(current))
	for _, evt := range current {
		currByID[evt.ID] = true
	}

	for _, evt := range current {
		if !prevByID[evt.ID] {
			added = append(added, evt)
		}
	}
	for _, evt := range previous {
		if !currByID[evt.ID] {
			removed = append(removed, evt)
		}
	}

	Sort(added)
	Sort(removed)
	return added, removed
}
