package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignInAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_signin_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"success"})

	GatePassTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_gatepass_transitions_total",
		Help: "Gate pass status transitions applied by the workflow engine.",
	}, []string{"status"})

	VisitsLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_visits_logged_total",
		Help: "Clinic check-ins created.",
	})
)
