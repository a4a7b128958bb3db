// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	filterBlockCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "filter",
			Name:      "block_total",
			Help:      "Total number of blocks evaluated by the filter.",
		}, []string{"type"})
	FilterBlockCounter      = filterBlockCounter.WithLabelValues("evaluated")
	FilterEmptyBlockCounter = filterBlockCounter.WithLabelValues("empty")

	filterRowCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "filter",
			Name:      "row_total",
			Help:      "Total number of rows seen and kept by the filter.",
		}, []string{"type"})
	FilterInputRowCounter  = filterRowCounter.WithLabelValues("input")
	FilterOutputRowCounter = filterRowCounter.WithLabelValues("output")

	filterInitFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "filter",
			Name:      "init_failure_total",
			Help:      "Total number of comparisons that failed to initialize.",
		}, []string{"type"})
	FilterArityFailureCounter      = filterInitFailureCounter.WithLabelValues("arity")
	FilterTypeFailureCounter       = filterInitFailureCounter.WithLabelValues("type")
	FilterMultiValueFailureCounter = filterInitFailureCounter.WithLabelValues("multi_value")
	FilterOtherFailureCounter      = filterInitFailureCounter.WithLabelValues("other")

	FilterEvalDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mo",
			Subsystem: "filter",
			Name:      "eval_duration_seconds",
			Help:      "Bucketed histogram of one block's predicate evaluation duration.",
			Buckets:   getDurationBuckets(),
		})

	FilterRunnerWorkersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mo",
			Subsystem: "filter",
			Name:      "runner_workers",
			Help:      "Number of filter runner workers currently evaluating blocks.",
		})
)
