// Package metrics defines and registers all custom Prometheus metrics for the
// bug tracking API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// BugsCreatedTotal counts bugs reported.
var BugsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_created_total",
		Help:      "Total number of bugs reported.",
	},
)

// BugWritesDeniedTotal counts writes refused by the authorization engine.
// Labels:
//   - role: the caller's role
//   - operation: "create", "update", or "delete"
var BugWritesDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_writes_denied_total",
		Help:      "Total number of bug writes denied by the authorization rules.",
	},
	[]string{"role", "operation"},
)

// BugStatusTransitionsTotal counts accepted status transitions.
// Label:
//   - status: the resulting bug status (e.g. "Assigned", "Resolved")
var BugStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_status_transitions_total",
		Help:      "Total number of accepted bug status transitions, by resulting status.",
	},
	[]string{"status"},
)

// BugUpdateConflictsTotal counts optimistic concurrency collisions surfaced
// to callers as retryable conflicts.
var BugUpdateConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_update_conflicts_total",
		Help:      "Total number of bug updates rejected due to concurrent modification.",
	},
)

// EmployeeDeletesRefusedTotal counts employee deletions blocked by a standing
// invariant.
// Label:
//   - reason: "last_administrator" or "referenced_by_bugs"
var EmployeeDeletesRefusedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_deletes_refused_total",
		Help:      "Total number of employee deletions refused by system invariants.",
	},
	[]string{"reason"},
)
