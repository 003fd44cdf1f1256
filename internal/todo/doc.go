// Package todo loads, mutates, sorts, and saves task lists.
//
// A task list is a single JSON file holding an array of tasks:
//
//	[
//	  {
//	    "title": "Pay rent",
//	    "due_date": "2024-05-01T00:00:00",
//	    "priority": "High",
//	    "tags": ["Personal"],
//	    "recurring": true,
//	    "progress": 0,
//	    "completed": false
//	  }
//	]
//
// # Loading
//
// A missing file is an empty list. An existing file is checked against an
// embedded JSON Schema before any task is built: title, due_date, priority
// and tags are required, recurring, progress and completed default to their
// zero values. Failures are reported as *ParseError with a path such as
// "[2].due_date".
//
// # Saving
//
// Every mutation rewrites the whole file through a temp file and rename, so
// a crash mid-write never leaves a truncated list behind. The file uses
// 2-space indentation and a trailing newline.
//
// # Ordering
//
// Tasks keep file order until Sort is called. Sorting by priority compares
// the raw strings, so "High" < "Low" < "Medium". SortByUrgency ranks
// High, Medium, Low instead.
package todo
