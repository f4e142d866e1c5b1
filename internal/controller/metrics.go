/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "machina"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics holds the lifecycle collectors. A nil *Metrics records nothing.
type Metrics struct {
	operations    *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	ipResolutions *prometheus.CounterVec
	forcedStops   prometheus.Counter
}

// NewMetrics creates the lifecycle collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "lifecycle",
			Name:      "operations_total",
			Help:      "Number of lifecycle operations by operation and result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "lifecycle",
			Name:      "operation_duration_seconds",
			Help:      "Duration of lifecycle operations.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"operation"}),
		ipResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ip_resolutions_total",
			Help:      "Number of IP resolution attempts by result.",
		}, []string{"result"}),
		forcedStops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forced_stops_total",
			Help:      "Number of forced stops issued after the graceful shutdown window elapsed.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.durations, m.ipResolutions, m.forcedStops)
	}

	return m
}

func (m *Metrics) observeOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, result(err == nil)).Inc()
	m.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeIPResolution(ok bool) {
	if m == nil {
		return
	}

	m.ipResolutions.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) incForcedStops() {
	if m == nil {
		return
	}

	m.forcedStops.Inc()
}

func result(ok bool) string {
	if ok {
		return resultSuccess
	}

	return resultFailure
}
