// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level metrics.
type Collector struct {
	graphqlRequests *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		graphqlRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkwell_graphql_requests_total",
			Help: "GraphQL requests by outcome",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inkwell_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
	}

	reg.MustRegister(c.graphqlRequests, c.httpStatus)
	return c
}

func (c *Collector) RecordGraphQL(outcome string) {
	c.graphqlRequests.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Middleware records the response status of every request.
func Middleware(collector *Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		collector.RecordHTTPStatus(c.Writer.Status())
	}
}

// Handler serves the registry's metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
