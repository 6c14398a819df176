package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRows        int
	Inserted         int
	Updated          int
	Duplicates       int
	OddsAttached     int
	ResolverMisses   int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRows = 0
	m.Inserted = 0
	m.Updated = 0
	m.Duplicates = 0
	m.OddsAttached = 0
	m.ResolverMisses = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordInsert increments the inserted-match count
func (m *IngestionMetrics) RecordInsert() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted++
}

// RecordUpdate increments the updated-match count
func (m *IngestionMetrics) RecordUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updated++
}

// RecordDuplicate increments the duplicate count
func (m *IngestionMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

// RecordOdds increments the odds-attached count
func (m *IngestionMetrics) RecordOdds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OddsAttached++
}

// RecordResolverMiss increments the unresolved-team count
func (m *IngestionMetrics) RecordResolverMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolverMisses++
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Rows=%d, Inserted=%d, Updated=%d, Duplicates=%d, Odds=%d, ResolverMisses=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalRows,
		m.Inserted,
		m.Updated,
		m.Duplicates,
		m.OddsAttached,
		m.ResolverMisses,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
