package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// followInterval is how often a followed journal is polled for new lines.
var followInterval = 100 * time.Millisecond

// TailHistory writes the last n lines of the journal at path to w. With
// n <= 0 the whole file is written. When follow is set it keeps copying
// appended lines until ctx is done.
func TailHistory(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read history file: %w", err)
	}
	if _, err := w.Write(lastLines(data, n)); err != nil {
		return err
	}

	if !follow {
		return nil
	}
	return tailFollow(ctx, w, file)
}

// lastLines returns the suffix of data holding its last n lines.
func lastLines(data []byte, n int) []byte {
	if n <= 0 || len(data) == 0 {
		return data
	}
	end := len(data)
	if data[end-1] == '\n' {
		end--
	}
	for i := end - 1; i >= 0; i-- {
		if data[i] != '\n' {
			continue
		}
		n--
		if n == 0 {
			return data[i+1:]
		}
	}
	return data
}

// tailFollow copies whatever is appended to file until ctx is done.
func tailFollow(ctx context.Context, w io.Writer, file *os.File) error {
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

