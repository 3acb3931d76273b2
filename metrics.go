// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package dyvrf

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK        = "ok"
	resultUndefined = "undefined"
	resultError     = "error"
	resultRejected  = "rejected"
)

var metrics = struct {
	proofs        *prometheus.CounterVec
	proofDur      *prometheus.SummaryVec
	verifications *prometheus.CounterVec
}{
	proofs: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dyvrf_proofs_total",
			Help: "Incremented for each proof computed, labeled by config and result.",
		},
		[]string{"config", "result"},
	),
	proofDur: prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "dyvrf_proof_duration_seconds",
			Help: "Summary of how long computing a proof takes.",
		},
		[]string{"config"},
	),
	verifications: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dyvrf_verifications_total",
			Help: "Incremented for each verification, labeled by config and result.",
		},
		[]string{"config", "result"},
	),
}

func init() {
	prometheus.MustRegister(metrics.proofs)
	prometheus.MustRegister(metrics.proofDur)
	prometheus.MustRegister(metrics.verifications)
}
