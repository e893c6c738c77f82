// Package scanner turns one rule section into a concrete filesystem search,
// executes it, and produces the section's result lines plus the resolved
// command string recorded back into the rule file.
package scanner

import "strings"

// Mode identifies how a section's command template is executed.
type Mode int

const (
	// ModeNone performs no search; only section metadata is emitted.
	ModeNone Mode = iota
	// ModeContentSearch greps file contents for keyword matches.
	ModeContentSearch
	// ModeLocateDump locates files by name and dumps their contents.
	ModeLocateDump
	// ModeLocate locates files by name only.
	ModeLocate
)

// Command template markers. A template is classified by which markers it
// contains, checked in precedence order.
const (
	contentMarker = "grep"
	locateMarker  = "find"
	dumpMarker    = "-exec cat"
)

// ClassifyCommand maps a command template to its search mode. Precedence:
// content search, then locate-and-dump, then locate.
func ClassifyCommand(template string) Mode {
	switch {
	case strings.Contains(template, contentMarker):
		return ModeContentSearch
	case strings.Contains(template, locateMarker) && strings.Contains(template, dumpMarker):
		return ModeLocateDump
	case strings.Contains(template, locateMarker):
		return ModeLocate
	default:
		return ModeNone
	}
}

// String returns the mode name used in run summaries and history records.
func (m Mode) String() string {
	switch m {
	case ModeContentSearch:
		return "content-search"
	case ModeLocateDump:
		return "locate-dump"
	case ModeLocate:
		return "locate"
	default:
		return "none"
	}
}
