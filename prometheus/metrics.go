package prometheus

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rjnat/cursorpos-admin/pkg/config"
)

var (
	// Entity metrics
	EntityCreatedCounter *prometheus.CounterVec
	EntityDeletedCounter *prometheus.CounterVec

	// Loyalty metrics
	LoyaltyTransactionCounter *prometheus.CounterVec
	LoyaltyPointsIssued       prometheus.Counter
	LoyaltyPointsRedeemed     prometheus.Counter
	LoyaltyTierChangeCounter  prometheus.Counter
	InsufficientPointsCounter prometheus.Counter

	// Database operation metrics
	DBOperationHistogram *prometheus.HistogramVec

	// Request metrics
	RequestDurationHistogram *prometheus.HistogramVec
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec

	// Namespace prefix for metrics
	namespace string
)

// InitMetrics initializes all Prometheus metrics
func InitMetrics(cfg *config.Config) {
	namespace = cfg.Metrics.Prefix

	// Entity metrics
	EntityCreatedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_created_total",
			Help:      "Total number of entities created",
		},
		[]string{"entity"},
	)

	EntityDeletedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_deleted_total",
			Help:      "Total number of entities soft-deleted",
		},
		[]string{"entity"},
	)

	// Loyalty metrics
	LoyaltyTransactionCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loyalty_transactions_total",
			Help:      "Total number of loyalty transactions recorded",
		},
		[]string{"type"},
	)

	LoyaltyPointsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_points_issued_total",
		Help:      "Total loyalty points added to customer balances",
	})

	LoyaltyPointsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_points_redeemed_total",
		Help:      "Total loyalty points deducted from customer balances",
	})

	LoyaltyTierChangeCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_tier_changes_total",
		Help:      "Total number of customer tier reassignments",
	})

	InsufficientPointsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_insufficient_points_total",
		Help:      "Total number of transactions rejected for insufficient points",
	})

	// Database operation metrics
	DBOperationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Request metrics
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		},
		[]string{"method", "path", "status"},
	)
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			APIRequestCounter.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Inc()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			RequestDurationHistogram.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
				"status": status,
			}).Observe(duration)

			if c.Response().Status >= 400 {
				APIErrorCounter.With(prometheus.Labels{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": status,
				}).Inc()
			}

			return err
		}
	}
}

// HandlerFunc returns a HTTP handler for metrics endpoint
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// TrackDBOperation returns a function that tracks database operation duration
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		if DBOperationHistogram == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DBOperationHistogram.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordEntityCreated increments the creation counter for an entity type
func RecordEntityCreated(entity string) {
	if EntityCreatedCounter != nil {
		EntityCreatedCounter.WithLabelValues(entity).Inc()
	}
}

// RecordEntityDeleted increments the deletion counter for an entity type
func RecordEntityDeleted(entity string) {
	if EntityDeletedCounter != nil {
		EntityDeletedCounter.WithLabelValues(entity).Inc()
	}
}

// RecordLoyaltyTransaction tracks a recorded ledger entry and its point movement
func RecordLoyaltyTransaction(txnType string, pointsChange int) {
	if LoyaltyTransactionCounter == nil {
		return
	}
	LoyaltyTransactionCounter.WithLabelValues(txnType).Inc()
	if pointsChange > 0 {
		LoyaltyPointsIssued.Add(float64(pointsChange))
	} else if pointsChange < 0 {
		LoyaltyPointsRedeemed.Add(float64(-pointsChange))
	}
}

// RecordTierChange increments the tier reassignment counter
func RecordTierChange() {
	if LoyaltyTierChangeCounter != nil {
		LoyaltyTierChangeCounter.Inc()
	}
}

// RecordInsufficientPoints increments the rejected-transaction counter
func RecordInsufficientPoints() {
	if InsufficientPointsCounter != nil {
		InsufficientPointsCounter.Inc()
	}
}
