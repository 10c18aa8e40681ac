package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GuardRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_guard_redirects_total",
		Help: "Route guard redirect decisions by target.",
	}, []string{"target"})

	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_registrations_total",
		Help: "Completed registrations by role.",
	}, []string{"role"})

	ApprovalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_company_approvals_total",
		Help: "Company approval transitions by disposition.",
	}, []string{"disposition"})
)
