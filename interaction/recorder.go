package interaction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/logging"
)

// Recorder accepts interaction events. Implementations must not block the
// caller; losing an event is acceptable, stalling an answer is not.
type Recorder interface {
	Record(kind EventKind, data map[string]any)
}

// NoOpRecorder discards every event.
type NoOpRecorder struct{}

// Record implements Recorder.
func (NoOpRecorder) Record(EventKind, map[string]any) {}

// FileRecorderOptions configures the file recorder.
type FileRecorderOptions struct {
	// BufferSize is the capacity of the event channel.
	BufferSize int
	// Logger receives write failures.
	Logger logging.Logger
	// Now supplies event timestamps. Overridden in tests.
	Now func() time.Time
}

// FileRecorder appends one JSON object per line to a tenant-scoped log file.
// Events flow through a buffered channel drained by a single goroutine, so
// Record never blocks; when the buffer is full the event is dropped and
// counted.
type FileRecorder struct {
	events  chan Entry
	done    chan struct{}
	file    *os.File
	opts    FileRecorderOptions
	dropped  atomic.Int64
	once     sync.Once
	closeErr error
}

// NewFileRecorder opens (or creates) the tenant's log file under dir. The
// filename encodes the tenant so per-tenant analysis needs no filtering.
func NewFileRecorder(dir string, tenant core.TenantKey, optFns ...func(o *FileRecorderOptions)) (*FileRecorder, error) {
	opts := FileRecorderOptions{
		BufferSize: 256,
		Logger:     logging.NoOpLogger{},
		Now:        time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	path := filepath.Join(dir, LogFileName(tenant))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	r := &FileRecorder{
		events: make(chan Entry, opts.BufferSize),
		done:   make(chan struct{}),
		file:   file,
		opts:   opts,
	}
	go r.drain()
	return r, nil
}

// LogFileName returns the log filename for a tenant.
func LogFileName(tenant core.TenantKey) string {
	return fmt.Sprintf("user_%s_project_%s.log", tenant.UserID, tenant.ProjectFolder)
}

// Record implements Recorder. Full buffer drops the event.
func (r *FileRecorder) Record(kind EventKind, data map[string]any) {
	entry := Entry{Timestamp: r.opts.Now().UTC(), Kind: kind, Data: data}
	select {
	case r.events <- entry:
	default:
		r.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded due to a full buffer.
func (r *FileRecorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close flushes buffered events and closes the file. Safe to call more than
// once; later calls return the first close's result.
func (r *FileRecorder) Close() error {
	r.once.Do(func() {
		close(r.events)
		<-r.done
		r.closeErr = r.file.Close()
	})
	return r.closeErr
}

func (r *FileRecorder) drain() {
	defer close(r.done)
	enc := json.NewEncoder(r.file)
	for entry := range r.events {
		if err := enc.Encode(entry); err != nil {
			r.opts.Logger.Error("failed to write interaction entry", "error", err)
		}
	}
}

// Compile-time checks.
var (
	_ Recorder = (*FileRecorder)(nil)
	_ Recorder = NoOpRecorder{}
)
