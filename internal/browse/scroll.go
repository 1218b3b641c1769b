package browse

// DefaultScrollThreshold is how many rows from the end of the list the next
// page is requested.
const DefaultScrollThreshold = 3

// NearBottom reports whether a window of visible rows starting at offset
// ends within threshold rows of a list of total rows.
func NearBottom(offset, visible, total, threshold int) bool {
	if threshold < 0 {
		threshold = 0
	}
	return offset+visible >= total-threshold
}
