/*
Package journal implements the durable, append-only record of chat history.

The store wraps a single text file: one line per broadcast or shout, formatted
`|<timestamp>| <sender>: <message>`. Appends are serialized so concurrent
sessions never interleave partial lines, and the same lock covers reads so a
reader always observes whole entries.
*/
package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

// TimeLayout is the timestamp format of a journal entry.
const TimeLayout = "02 Jan 2006 15:04:05"

// Store is the handle to the journal file. It is opened once at server start
// and released at shutdown; all access goes through its methods.
type Store struct {
	path string

	// mu serializes appends, reads, and truncation.
	mu sync.Mutex

	// file is held open in append mode for the store's lifetime.
	file *os.File

	logger zerolog.Logger
}

// Open creates (if needed) and opens the journal file at path.
// Parent directories are created on demand.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file %s: %w", path, err)
	}

	storeLogger := logx.Logger().With().
		Str("component", "Journal").
		Str("path", path).
		Logger()

	storeLogger.Info().Msg("Journal store opened.")

	return &Store{
		path:   path,
		file:   file,
		logger: storeLogger,
	}, nil
}

// Append stamps the message with the current time and writes it as one entry.
// The entry is written with a single Write call so concurrent appends never
// interleave, and the file is in append mode so ordering follows commit order.
func (s *Store) Append(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := formatEntry(time.Now(), message)

	if _, err := s.file.WriteString(entry + "\n"); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	return nil
}

// ReadAll returns the entire journal contents in write order.
// A missing or empty file yields an empty string, not an error.
func (s *Store) ReadAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read journal file: %w", err)
	}

	return string(data), nil
}

// ReadTail returns at most the last n entries in chronological order
// (oldest of the tail first). Fewer than n entries returns all of them;
// an empty or missing journal returns nil.
func (s *Store) ReadTail(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal file for tail read: %w", err)
	}
	defer file.Close()

	// Ring over the scan keeps memory bounded by n rather than file size.
	tail := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(tail) == n {
			tail = append(tail[1:], line)
		} else {
			tail = append(tail, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan journal file: %w", err)
	}

	if len(tail) == 0 {
		return nil, nil
	}

	return tail, nil
}

// Clear truncates the journal to zero bytes. Subsequent reads see no history
// until new entries are appended.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate journal file: %w", err)
	}

	s.logger.Info().Msg("Chat history cleared.")

	return nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info().Msg("Closing journal store.")

	return s.file.Close()
}

// formatEntry serializes one journal line.
func formatEntry(at time.Time, message string) string {
	return fmt.Sprintf("|%s| %s", at.Format(TimeLayout), message)
}
