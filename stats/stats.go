// Package stats exposes Prometheus counters and histograms for the wire
// codec, zone parser, DNSSEC validator, and transaction signatures.
package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesPacked = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnscore_messages_packed_total", Help: "Messages encoded to wire format, by direction"},
		[]string{"direction"},
	)
	MessagesUnpacked = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnscore_messages_unpacked_total", Help: "Messages decoded from wire format, by outcome"},
		[]string{"outcome"},
	)
	CodecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "dnscore_codec_duration_seconds", Help: "Time spent packing or unpacking a message", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)

	ZonesParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnscore_zones_parsed_total", Help: "Zone files parsed, by outcome"},
		[]string{"outcome"},
	)
	ZoneRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "dnscore_zone_records", Help: "Record count of successfully parsed zones", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
	)

	DNSSECVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnscore_dnssec_verifications_total", Help: "RRSIG/NSEC/NSEC3 verification attempts, by type and outcome"},
		[]string{"proof", "outcome"},
	)

	TSIGOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnscore_tsig_operations_total", Help: "TSIG/SIG(0) sign and verify calls, by op and outcome"},
		[]string{"op", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		MessagesPacked, MessagesUnpacked, CodecDuration,
		ZonesParsed, ZoneRecords,
		DNSSECVerifications, TSIGOperations,
	)
}

// Timer returns a func that, when called, observes the time elapsed since
// Timer was called into CodecDuration under op. It does not touch the
// MessagesPacked or MessagesUnpacked counters.
func Timer(op string) func() {
	start := time.Now()
	return func() {
		CodecDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObservePack records a completed Pack call.
func ObservePack(direction string, elapsed time.Duration) {
	MessagesPacked.WithLabelValues(direction).Inc()
	CodecDuration.WithLabelValues("pack").Observe(elapsed.Seconds())
}

// ObserveUnpack records a completed Unpack call.
func ObserveUnpack(elapsed time.Duration, err error) {
	MessagesUnpacked.WithLabelValues(outcome(err)).Inc()
	CodecDuration.WithLabelValues("unpack").Observe(elapsed.Seconds())
}

// ObserveZoneParse records a completed zone-file parse.
func ObserveZoneParse(records int, err error) {
	ZonesParsed.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		ZoneRecords.Observe(float64(records))
	}
}

// ObserveDNSSEC records a completed RRSIG/NSEC/NSEC3 verification.
func ObserveDNSSEC(proof string, err error) {
	DNSSECVerifications.WithLabelValues(proof, outcome(err)).Inc()
}

// ObserveTSIG records a completed TSIG or SIG(0) sign/verify call.
func ObserveTSIG(op string, err error) {
	TSIGOperations.WithLabelValues(op, outcome(err)).Inc()
}
