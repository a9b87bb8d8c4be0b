package bootstrap

import (
	"fmt"
	"io"
	"strings"
)

// PrintDefaultsResult writes the seeding results in a formatted block.
// Nothing is printed when every entry already existed.
func PrintDefaultsResult(w io.Writer, result *DefaultsResult) {
	if result == nil || countCreated(result.Privileges)+countCreated(result.Roles) == 0 {
		return
	}

	border := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", border)
	fmt.Fprintln(w, "DEFAULT DATA SEEDED")
	fmt.Fprintf(w, "%s\n", border)

	printEntries(w, "Privileges", result.Privileges)
	printEntries(w, "Roles", result.Roles)

	fmt.Fprintf(w, "%s\n\n", border)
}

func printEntries(w io.Writer, title string, entries []EntryInfo) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, e := range entries {
		status := "Already existed"
		if e.Created {
			status = "Created"
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, e.Name)
		fmt.Fprintf(w, "     ID: %s\n", e.ID)
		fmt.Fprintf(w, "     Status: %s\n", status)
	}
}
