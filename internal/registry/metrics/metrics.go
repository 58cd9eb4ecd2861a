package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds registry-level Prometheus metrics.
type Metrics struct {
	CertificatesIssued   prometheus.Counter
	CertificatesVerified prometheus.Counter
	CertificatesRevoked  prometheus.Counter
	GradeUpdates         prometheus.Counter
	OwnershipTransfers   prometheus.Counter
	RejectedOperations   *prometheus.CounterVec
}

// New creates and registers registry metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_certificates_issued_total",
			Help: "Total certificates issued",
		}),
		CertificatesVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_certificates_verified_total",
			Help: "Total certificates verified",
		}),
		CertificatesRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_certificates_revoked_total",
			Help: "Total certificates revoked",
		}),
		GradeUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_grade_updates_total",
			Help: "Total accepted grade updates",
		}),
		OwnershipTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_ownership_transfers_total",
			Help: "Total accepted ownership transfers",
		}),
		RejectedOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certledger_rejected_operations_total",
			Help: "Rejected registry operations by failure code",
		}, []string{"code"}),
	}
}

// IncRejected counts one rejected operation by its failure code.
func (m *Metrics) IncRejected(code string) {
	if m == nil {
		return
	}
	m.RejectedOperations.WithLabelValues(code).Inc()
}
