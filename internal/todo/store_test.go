package todo_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/todolist/internal/todo"
)

func newStore(t *testing.T, opts ...todo.Option) (*todo.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := todo.Open(path, opts...)
	require.NoError(t, err)
	return s, path
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 0, 0, 0, 0, time.Local)
}

func titles(entries []todo.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

type fakeRecorder struct {
	changes []todo.Change
	err     error
}

func (f *fakeRecorder) Record(c todo.Change) error {
	f.changes = append(f.changes, c)
	return f.err
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, path := newStore(t)

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
	assert.Equal(t, path, s.Path())

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "open must not create the file")
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := todo.Open("")
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	s, path := newStore(t)

	zone := time.FixedZone("UTC+7", 7*60*60)
	due := []time.Time{
		time.Date(2024, time.May, 1, 12, 30, 0, 123456789, time.Local),
		time.Date(2024, time.June, 2, 0, 0, 0, 0, zone),
		day(3),
	}
	require.NoError(t, s.Add("Pay rent", due[0], todo.PriorityHigh, []string{"Personal", "Personal"}, true))
	require.NoError(t, s.Add("Ship release", due[1], todo.PriorityMedium, []string{"Work"}, false))
	require.NoError(t, s.Add("Call mom", due[2], "Someday", nil, false))
	require.NoError(t, s.Complete(1))

	loaded, err := todo.Open(path)
	require.NoError(t, err)

	want := s.List()
	got := loaded.List()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Priority, got[i].Priority)
		assert.Equal(t, want[i].Tags, got[i].Tags)
		assert.Equal(t, want[i].Progress, got[i].Progress)
		assert.Equal(t, want[i].Completed, got[i].Completed)
		assert.True(t, got[i].DueDate.Equal(due[i].Truncate(time.Microsecond)),
			"due date %d: got %s, want %s", i, got[i].DueDate, due[i])
	}

	for i := range want {
		a, err := s.Task(i)
		require.NoError(t, err)
		b, err := loaded.Task(i)
		require.NoError(t, err)
		assert.Equal(t, a.Recurring, b.Recurring)
	}
}

func TestAddAppendsPendingTask(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Add("first", day(1), todo.PriorityLow, []string{"a"}, false))
	require.NoError(t, s.Add("second", day(2), todo.PriorityHigh, []string{"b", "c"}, true))

	entries := s.List()
	require.Len(t, entries, 2)
	last := entries[1]
	assert.Equal(t, "second", last.Title)
	assert.Equal(t, todo.PriorityHigh, last.Priority)
	assert.Equal(t, []string{"b", "c"}, last.Tags)
	assert.Equal(t, 0, last.Progress)
	assert.False(t, last.Completed)
}

func TestAddCopiesTags(t *testing.T) {
	s, _ := newStore(t)
	tags := []string{"Work"}
	require.NoError(t, s.Add("t", day(1), todo.PriorityLow, tags, false))
	tags[0] = "changed"

	assert.Equal(t, []string{"Work"}, s.List()[0].Tags)

	entries := s.List()
	entries[0].Tags[0] = "mutated"
	assert.Equal(t, []string{"Work"}, s.List()[0].Tags)
}

func TestEdit(t *testing.T) {
	path := writeFile(t, `[
  {"title": "old", "due_date": "2024-05-01T00:00:00", "priority": "Low", "tags": ["x"],
   "recurring": true, "progress": 40, "completed": true},
  {"title": "other", "due_date": "2024-05-02T00:00:00", "priority": "High", "tags": [],
   "recurring": false, "progress": 0}
]`)
	s, err := todo.Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Edit(0, "new", day(9), todo.PriorityHigh, []string{"y", "z"}, false))

	got, err := s.Task(0)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.True(t, got.DueDate.Equal(day(9)))
	assert.Equal(t, todo.PriorityHigh, got.Priority)
	assert.Equal(t, []string{"y", "z"}, got.Tags)
	assert.False(t, got.Recurring)
	assert.Equal(t, 40, got.Progress, "progress must be kept")
	assert.True(t, got.Completed, "completion must be kept")

	other, err := s.Task(1)
	require.NoError(t, err)
	assert.Equal(t, "other", other.Title)

	reloaded, err := todo.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "other"}, titles(reloaded.List()))
}

func TestOutOfRangeIndexLeavesFileUntouched(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	require.NoError(t, s.Add("b", day(2), todo.PriorityLow, nil, false))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	ops := map[string]func(i int) error{
		"edit": func(i int) error {
			return s.Edit(i, "x", day(3), todo.PriorityHigh, []string{"t"}, true)
		},
		"delete":   s.Delete,
		"complete": s.Complete,
		"task": func(i int) error {
			_, err := s.Task(i)
			return err
		},
	}

	for name, op := range ops {
		for _, index := range []int{-1, 2, 10} {
			err := op(index)
			assert.ErrorIs(t, err, todo.ErrNotFound, "%s(%d)", name, index)
		}
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"a", "b"}, titles(s.List()))
}

func TestDelete(t *testing.T) {
	s, path := newStore(t)
	for i, title := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(title, day(i+1), todo.PriorityLow, nil, false))
	}

	require.NoError(t, s.Delete(1))
	assert.Equal(t, []string{"a", "c"}, titles(s.List()))

	reloaded, err := todo.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, titles(reloaded.List()))
}

func TestComplete(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	require.NoError(t, s.Add("b", day(2), todo.PriorityLow, nil, false))

	require.NoError(t, s.Complete(1))

	reloaded, err := todo.Open(path)
	require.NoError(t, err)
	entries := reloaded.List()
	assert.False(t, entries[0].Completed)
	assert.True(t, entries[1].Completed)
}

func TestSort(t *testing.T) {
	seed := []struct {
		title    string
		due      time.Time
		priority todo.Priority
	}{
		{"charlie", day(3), todo.PriorityMedium},
		{"alpha", day(1), todo.PriorityHigh},
		{"bravo", day(2), todo.PriorityLow},
	}

	tests := []struct {
		key  todo.SortKey
		want []string
	}{
		{todo.SortByTitle, []string{"alpha", "bravo", "charlie"}},
		{todo.SortByEvent, []string{"alpha", "bravo", "charlie"}},
		{todo.SortByDueDate, []string{"alpha", "bravo", "charlie"}},
		// Plain string order: High < Low < Medium.
		{todo.SortByPriority, []string{"alpha", "bravo", "charlie"}},
		{todo.SortByUrgency, []string{"alpha", "charlie", "bravo"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			s, path := newStore(t)
			for _, task := range seed {
				require.NoError(t, s.Add(task.title, task.due, task.priority, nil, false))
			}

			require.NoError(t, s.Sort(tt.key))
			assert.Equal(t, tt.want, titles(s.List()))

			reloaded, err := todo.Open(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(reloaded.List()))
		})
	}
}

func TestSortPriorityIsLexicographic(t *testing.T) {
	s, _ := newStore(t)
	for i, p := range []todo.Priority{"Medium", "High", "Low"} {
		require.NoError(t, s.Add(string(p), day(i+1), p, nil, false))
	}

	require.NoError(t, s.Sort(todo.SortByPriority))

	var got []todo.Priority
	for _, e := range s.List() {
		got = append(got, e.Priority)
	}
	assert.Equal(t, []todo.Priority{"High", "Low", "Medium"}, got)
}

func TestSortIsStable(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Add("first", day(5), todo.PriorityHigh, nil, false))
	require.NoError(t, s.Add("second", day(1), todo.PriorityLow, nil, false))
	require.NoError(t, s.Add("third", day(3), todo.PriorityHigh, nil, false))
	require.NoError(t, s.Add("fourth", day(2), todo.PriorityLow, nil, false))

	require.NoError(t, s.Sort(todo.SortByPriority))
	assert.Equal(t, []string{"first", "third", "second", "fourth"}, titles(s.List()))
}

func TestSortInvalidKey(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = s.Sort("colour")
	assert.ErrorIs(t, err, todo.ErrInvalidSortKey)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoadDefaultsMissingCompleted(t *testing.T) {
	path := writeFile(t, `[
  {"title": "old", "due_date": "2024-05-01T00:00:00", "priority": "High", "tags": ["a"], "recurring": false, "progress": 10},
  {"title": "new", "due_date": "2024-05-02T08:15:00.5", "priority": "Low", "tags": [], "recurring": true, "progress": 0, "completed": true}
]`)

	s, err := todo.Open(path)
	require.NoError(t, err)

	entries := s.List()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Completed)
	assert.Equal(t, 10, entries[0].Progress)
	assert.True(t, entries[1].Completed)
	assert.True(t, entries[1].DueDate.Equal(time.Date(2024, time.May, 2, 8, 15, 0, 500000000, time.Local)))
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		content  string
		wantPath string
	}{
		"Malformed JSON should fail": {
			content: `[{"title": "a",`,
		},
		"Trailing data should fail": {
			content: `[] []`,
		},
		"Object instead of array should fail": {
			content: `{"title": "a"}`,
		},
		"Missing title should fail": {
			content:  `[{"due_date": "2024-05-01", "priority": "High", "tags": []}]`,
			wantPath: "[0]",
		},
		"Missing tags should fail": {
			content: `[
  {"title": "ok", "due_date": "2024-05-01", "priority": "High", "tags": []},
  {"title": "bad", "due_date": "2024-05-01", "priority": "High"}
]`,
			wantPath: "[1]",
		},
		"Wrong tag type should fail": {
			content:  `[{"title": "a", "due_date": "2024-05-01", "priority": "High", "tags": [1]}]`,
			wantPath: "[0].tags[0]",
		},
		"Bad due date should fail": {
			content:  `[{"title": "a", "due_date": "tomorrow", "priority": "High", "tags": []}]`,
			wantPath: "[0].due_date",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, test.content)

			_, err := todo.Open(path)
			require.Error(t, err)

			var pe *todo.ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T: %v", err, err)
			if test.wantPath != "" {
				assert.Equal(t, test.wantPath, pe.Path)
			}
		})
	}
}

func TestReloadKeepsListOnError(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Add("keep", day(1), todo.PriorityLow, nil, false))

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	err := s.Reload()
	require.Error(t, err)
	assert.Equal(t, []string{"keep"}, titles(s.List()))
}

func TestSaveFormat(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Add("a", day(1), todo.PriorityHigh, nil, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
  {
    "title": "a",
    "due_date": "2024-05-01T00:00:00",
    "priority": "High",
    "tags": [],
    "recurring": false,
    "progress": 0,
    "completed": false
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s, path := newStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add("t", day(i+1), todo.PriorityLow, nil, false))
	}
	require.NoError(t, s.Delete(0))
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
}

func TestFailedSaveKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "tasks.json")
	s, err := todo.Open(path)
	require.NoError(t, err)

	// A regular file where the parent directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub"), []byte("x"), 0o644))

	err = s.Add("lost", day(1), todo.PriorityLow, nil, false)
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	s, err := todo.Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	s, _ := newStore(t, todo.WithRecorder(rec))

	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	require.NoError(t, s.Add("b", day(2), todo.PriorityHigh, nil, false))
	require.NoError(t, s.Edit(0, "a2", day(1), todo.PriorityLow, nil, false))
	require.NoError(t, s.Complete(1))
	require.NoError(t, s.Sort(todo.SortByTitle))
	require.NoError(t, s.Delete(0))
	assert.ErrorIs(t, s.Delete(5), todo.ErrNotFound)

	var ops []todo.Op
	for _, c := range rec.changes {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []todo.Op{todo.OpAdd, todo.OpAdd, todo.OpEdit, todo.OpComplete, todo.OpSort, todo.OpDelete}, ops)
	assert.Equal(t, 1, rec.changes[1].Index)
	assert.Equal(t, "a2", rec.changes[2].Task.Title)
	assert.Equal(t, todo.SortByTitle, rec.changes[4].Key)
	assert.Equal(t, -1, rec.changes[4].Index)
}

func TestRecorderErrorDoesNotFailMutation(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	s, _ := newStore(t, todo.WithRecorder(rec))

	require.NoError(t, s.Add("a", day(1), todo.PriorityLow, nil, false))
	assert.Equal(t, 1, s.Len())
}
