// internal/progress/reporter.go
package progress

import (
	"sync"
	"time"

	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
)

// Reporter tracks and reports progress over a batch of images
type Reporter struct {
	mu        sync.Mutex
	total     int
	analyzed  int
	errors    int
	startTime time.Time
}

// New creates a new progress reporter
func New() *Reporter {
	return &Reporter{}
}

// Start initializes the reporter with the total number of images
func (r *Reporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.analyzed = 0
	r.errors = 0
	r.startTime = time.Now()

	if total > 1 {
		logger.Info("Analyzing %d images", total)
	}
}

// Complete marks an image as analyzed
func (r *Reporter) Complete(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.analyzed++
	logger.Debug("Analyzed %s (%d/%d)", path, r.analyzed+r.errors, r.total)
}

// Error marks an image as failed
func (r *Reporter) Error(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors++
	logger.Debug("Failed %s: %v", path, err)
}

// Finish logs the batch summary
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.total <= 1 && r.errors == 0 {
		return
	}

	duration := time.Since(r.startTime)
	logger.Info("Done: %d/%d images analyzed, %d errors in %s",
		r.analyzed, r.total, r.errors, duration.Round(time.Millisecond))
}
