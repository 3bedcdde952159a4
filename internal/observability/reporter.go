package observability

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// repeatWindow is how long an identical report is suppressed.
	repeatWindow     = 5 * time.Minute
	defaultCacheSize = 100
)

type ReporterParams struct {
	// DSN is the Sentry project DSN. Reporting is disabled when empty.
	DSN string
	// Release is the application version.
	Release string
	// Environment is the deployment environment, e.g. "development".
	Environment string
	// CacheSize bounds the number of remembered reports.
	CacheSize int
}

// Reporter sends errors to Sentry, dropping repeats of a recent report.
type Reporter struct {
	mu     sync.Mutex
	recent *lru.Cache
	now    func() time.Time
}

// NewReporter initializes the Sentry SDK.
//
// Returns nil if the dedup cache cannot be created.
func NewReporter(params ReporterParams) *Reporter {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: true,
		Release:          params.Release,
		Environment:      params.Environment,
	}); err != nil {
		slog.Error("observability: failed to initialize sentry", "err", err)
	}

	size := params.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		slog.Error("observability: failed to create report cache", "err", err)
		return nil
	}

	return &Reporter{recent: cache, now: time.Now}
}

// shouldReport returns false if the same message was reported within
// repeatWindow.
func (r *Reporter) shouldReport(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := md5.Sum([]byte(msg))
	key := hex.EncodeToString(sum[:])

	now := r.now()
	if last, ok := r.recent.Get(key); ok && now.Sub(last.(time.Time)) < repeatWindow {
		return false
	}
	r.recent.Add(key, now)
	return true
}

// CaptureException reports err with the given tags.
func (r *Reporter) CaptureException(err error, tags Tags) {
	if !r.shouldReport(err.Error()) {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureException(err)
}

// CaptureMessage reports an informational message with the given tags.
func (r *Reporter) CaptureMessage(msg string, tags Tags) {
	if !r.shouldReport(msg) {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureMessage(msg)
}

// Reraise reports a recovered panic value and flushes.
func (r *Reporter) Reraise(value any, tags Tags) {
	err, ok := value.(error)
	if !ok {
		err = fmt.Errorf("%v", value)
	}
	r.CaptureException(err, tags)
	r.Flush(2 * time.Second)
}

// Flush waits up to timeout for queued events to be sent.
func (r *Reporter) Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
