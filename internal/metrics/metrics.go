package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BookingsCreated 提交成功的预约数
	BookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unisports", Name: "bookings_created_total", Help: "Bookings created (PENDING)",
	})
	// BookingsApproved 审批通过的预约数
	BookingsApproved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unisports", Name: "bookings_approved_total", Help: "Bookings approved",
	})
	// BookingsRejected 驳回的预约数
	BookingsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unisports", Name: "bookings_rejected_total", Help: "Bookings rejected",
	})
	// BookingConflicts 因时段冲突被拒的操作数（创建与审批合计）
	BookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unisports", Name: "booking_conflicts_total", Help: "Operations refused due to slot conflicts",
	})
	// HTTPDuration HTTP 请求耗时
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unisports", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(BookingsCreated, BookingsApproved, BookingsRejected, BookingConflicts, HTTPDuration)
}

// Handler 暴露 /metrics 端点
func Handler() http.Handler { return promhttp.Handler() }

// ObserveHTTP 记录一次 HTTP 请求耗时
func ObserveHTTP(method, path, status string, d time.Duration) {
	HTTPDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}
