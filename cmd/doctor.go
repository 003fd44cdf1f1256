package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/todo"
)

// doctorCommand checks the config files, the tasks file and the history
// directory.
func (a *app) doctorCommand(args []string) error {
	flags := a.newFlagSet("doctor")
	verbose := flags.Bool("v", false, "Verbose output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := noArgs(flags); err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintln(w, "Todolist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config files:")
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(w, "  ⚠️  None found (using defaults)")
	}
	for _, f := range a.cws.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Tasks file: %s\n", a.cfg.TodoFile)
	info, err := os.Stat(a.cfg.TodoFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on the first change)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		store, err := todo.Open(a.cfg.TodoFile, todo.WithLogger(a.logger))
		if err != nil {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
			allOK = false
			break
		}
		fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", store.Len())
		if *verbose {
			for i, e := range store.List() {
				fmt.Fprintf(w, "    %d. %s\n", i+1, e.Title)
			}
		}
	}
	fmt.Fprintln(w)

	if !a.cfg.History {
		fmt.Fprintln(w, "History: disabled")
	} else if dir, err := logging.HistoryDir(a.cfg.LogDir, a.cfg.TodoFile); err != nil {
		fmt.Fprintln(w, "History:")
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "History: %s\n", dir)
		if err := checkWritable(dir); err != nil {
			fmt.Fprintf(w, "  ❌ Not writable: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ Writable")
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkWritable creates dir if needed and writes a scratch file into it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
