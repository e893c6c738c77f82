// Package fileutil provides the recursive directory walk that feeds every
// scan mode. The walk is depth-first in OS directory-entry order; unreadable
// entries are skipped so one bad file never aborts a sweep.
package fileutil
