package commands

import "strings"

// HelpSection groups the help entries of one section.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpEntry is one line of the help screen.
type HelpEntry struct {
	Keys        string
	Label       string
	Description string
}

// HelpSections builds the help screen content in registration order,
// skipping unavailable actions.
func (r *Registry) HelpSections() []HelpSection {
	var out []HelpSection
	index := map[string]int{}
	for _, a := range r.actions {
		if !r.Enabled(a.ID) {
			continue
		}
		keys := append([]string(nil), a.Keys...)
		if a.Builtin != "" {
			keys = append(keys, "`"+a.Builtin+"`")
		}
		entry := HelpEntry{Keys: strings.Join(keys, " / "), Label: a.Label, Description: a.Description}

		i, ok := index[a.Section]
		if !ok {
			out = append(out, HelpSection{Title: a.Section})
			i = len(out) - 1
			index[a.Section] = i
		}
		out[i].Entries = append(out[i].Entries, entry)
	}
	return out
}
