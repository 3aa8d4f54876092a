// Package postgres holds the gorm-backed implementations of the domain repositories.
package postgres

import (
	"time"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// observe records a query's latency. A nil collector is allowed.
func observe(m *metrics.Collector, op, table string, start time.Time) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
}

func normalizePage(page, size int) (int, int) {
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, size
}

func totalPages(count int64, size int) int {
	return int((count + int64(size) - 1) / int64(size))
}
