package utils

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}
