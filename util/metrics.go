package util

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CaseNumbersAllocated counts case numbers minted for new identities.
	CaseNumbersAllocated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "healthsync_case_numbers_allocated_total",
		Help: "Total number of case numbers allocated",
	})

	AppointmentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsync_appointment_transitions_total",
			Help: "Appointment request status changes",
		},
		[]string{"from", "to"},
	)

	PrescriptionsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsync_prescriptions_submitted_total",
			Help: "Prescription submissions by outcome",
		},
		[]string{"status"},
	)

	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsync_auth_attempts_total",
			Help: "Signin attempts by role and outcome",
		},
		[]string{"role", "status"},
	)

	geoipCacheHitsGauge = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "healthsync_geoip_cache_hits",
		Help: "GeoIP lookups served from cache",
	}, func() float64 {
		hits, _, _ := GetGeoIPCacheMetrics()
		return float64(hits)
	})

	geoipCacheMissesGauge = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "healthsync_geoip_cache_misses",
		Help: "GeoIP lookups that missed the cache",
	}, func() float64 {
		_, misses, _ := GetGeoIPCacheMetrics()
		return float64(misses)
	})
)

// RegisterDomainMetrics registers the domain counters with reg.
func RegisterDomainMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		CaseNumbersAllocated, AppointmentTransitions, PrescriptionsSubmitted, AuthAttempts,
		geoipCacheHitsGauge, geoipCacheMissesGauge,
	} {
		if err := reg.Register(c); err != nil {
			if _, dup := err.(prometheus.AlreadyRegisteredError); !dup {
				return err
			}
		}
	}
	return nil
}
