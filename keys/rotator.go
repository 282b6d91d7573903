package keys

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// ErrNoKeys indicates the credential pool is empty. This is fatal at
// startup: a process without outbound credentials must not serve traffic.
var ErrNoKeys = errors.New("no API keys in credential pool")

// Rotator hands out credentials from a fixed pool in strict round-robin
// order, spreading outbound call load so no single key absorbs all traffic.
// Safe for concurrent use: every Next call observes a distinct cursor
// position before the sequence repeats.
type Rotator struct {
	pool   []string
	cursor atomic.Uint64
}

// NewRotator creates a rotator over the given ordered credential pool.
// Returns ErrNoKeys if the pool is empty.
func NewRotator(pool []string) (*Rotator, error) {
	if len(pool) == 0 {
		return nil, ErrNoKeys
	}
	r := &Rotator{pool: make([]string, len(pool))}
	copy(r.pool, pool)
	return r, nil
}

// NewRotatorFromFile loads a line-delimited key file and builds a rotator
// from it. Blank lines are skipped; an effectively empty file yields
// ErrNoKeys.
func NewRotatorFromFile(path string) (*Rotator, error) {
	pool, err := LoadKeyFile(path)
	if err != nil {
		return nil, err
	}
	return NewRotator(pool)
}

// Next returns the credential at the current cursor position and advances
// the cursor, wrapping to the first key after the last one.
func (r *Rotator) Next() string {
	n := r.cursor.Add(1) - 1
	return r.pool[n%uint64(len(r.pool))]
}

// Len returns the number of credentials in the pool.
func (r *Rotator) Len() int {
	return len(r.pool)
}

// LoadKeyFile reads an ordered, line-delimited list of credential strings.
// Blank lines are ignored; key order in the file is preserved.
func LoadKeyFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening key file: %w", err)
	}
	defer f.Close()

	var pool []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		pool = append(pool, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return pool, nil
}
