// Package voting holds the pure date-voting logic: tallying votes,
// resolving a winner and deciding when the weekly voting window is open.
// Nothing here touches the network or any UI state.
package voting

// Tally counts how many votes each date option received. The second return
// value lists the option ids in first-encounter order, which is the order
// Winner scans them in.
func Tally(optionIDs []string) (map[string]int, []string) {
	counts := make(map[string]int, len(optionIDs))
	var order []string
	for _, id := range optionIDs {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	return counts, order
}

// Winner resolves the winning option from an ordered sequence of votes.
//
// The scan is deliberately order-sensitive: walking options in encounter
// order, a strictly higher count takes the lead, and any count equal to the
// running maximum clears the leader. Only a lone strict maximum at the end
// of the pass wins; {3, 3, 1} has no winner.
func Winner(optionIDs []string) (string, bool) {
	counts, order := Tally(optionIDs)

	maxVotes := -1
	winning := ""
	for _, id := range order {
		switch count := counts[id]; {
		case count > maxVotes:
			maxVotes = count
			winning = id
		case count == maxVotes:
			winning = ""
		}
	}

	return winning, winning != ""
}
