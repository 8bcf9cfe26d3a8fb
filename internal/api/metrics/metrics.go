// Package metrics defines and registers the custom Prometheus metrics for
// the account service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// RegistrationsTotal counts completed registrations.
// Label:
//   - result: "success", "duplicate_email", "invalid_input", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "user_not_found", "invalid_password", "blocked", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersBlockedTotal counts block operations that succeeded.
var UsersBlockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_blocked_total",
		Help:      "Total number of accounts transitioned to BLOCKED.",
	},
)

// AuthDeniedTotal counts requests rejected by the access guard or an
// authorization rule.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token", or "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by authentication or authorization.",
	},
	[]string{"reason"},
)
