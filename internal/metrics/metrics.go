// Package metrics exports battery module readings and link statistics to
// Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/fault"
	"github.com/moffa90/go-fortelion/protocol"
)

const namespace = "fortelion"

var (
	registerOnce sync.Once

	up = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "Whether the last poll of the battery module succeeded.",
		},
		[]string{"device"},
	)
	lastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful poll.",
		},
		[]string{"device"},
	)
	cellVoltage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "cell_voltage_volts",
			Help:      "Voltage of each cell.",
		},
		[]string{"device", "cell"},
	)
	moduleVoltage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "module_voltage_volts",
			Help:      "Voltage of the whole module.",
		},
		[]string{"device"},
	)
	current = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "current_amperes",
			Help:      "Module current, positive while charging.",
		},
		[]string{"device"},
	)
	temperature = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "temperature_celsius",
			Help:      "Module temperature.",
		},
		[]string{"device", "sensor"},
	)
	capacity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "capacity_amp_hours",
			Help:      "Module capacity by kind: remaining, full_charge or design.",
		},
		[]string{"device", "kind"},
	)
	stateOfCharge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "state_of_charge_percent",
			Help:      "State of charge, absolute (of design) or relative (of full charge).",
		},
		[]string{"device", "basis"},
	)
	stateOfHealth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "state_of_health_percent",
			Help:      "State of health.",
		},
		[]string{"device"},
	)
	faultState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "battery",
			Name:      "fault",
			Help:      "Fault state per item: 0 ok, 1 ng, -1 unknown.",
		},
		[]string{"device", "item"},
	)
	exchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "uart",
			Name:      "exchanges_total",
			Help:      "Request/response exchanges by command and result.",
		},
		[]string{"device", "command", "result"},
	)
	exchangeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "uart",
			Name:      "exchange_duration_seconds",
			Help:      "Exchange duration in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"device", "command"},
	)
)

// RegisterMetrics registers every collector with the default registry. It is
// safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			up, lastSuccess,
			cellVoltage, moduleVoltage, current, temperature,
			capacity, stateOfCharge, stateOfHealth, faultState,
			exchanges, exchangeDuration,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

// RecordExchange counts one exchange. It has the shape of a
// bms.ExchangeCallback once device is bound.
func RecordExchange(device string, x bms.Exchange) {
	RegisterMetrics()
	command := x.Command.Name()
	exchanges.WithLabelValues(device, command, ExchangeResult(x.Err)).Inc()
	exchangeDuration.WithLabelValues(device, command).Observe(x.Elapsed.Seconds())
}

// ExchangeResult classifies an exchange error for the result label.
func ExchangeResult(err error) string {
	var se *bms.SendError
	var re *bms.ReceiveError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &se):
		return "send_error"
	case errors.As(err, &re):
		return "receive_error"
	case protocol.IsFrameError(err):
		return "frame_error"
	default:
		return "error"
	}
}

// RecordSnapshot publishes a successful reading. Units are converted to
// volts, amperes and amp-hours.
func RecordSnapshot(device string, s *bms.Snapshot) {
	RegisterMetrics()

	up.WithLabelValues(device).Set(1)
	lastSuccess.WithLabelValues(device).Set(float64(s.Time.UnixNano()) / 1e9)

	for i, mv := range s.CellVoltages {
		cellVoltage.WithLabelValues(device, strconv.Itoa(i+1)).Set(float64(mv) / 1000)
	}
	moduleVoltage.WithLabelValues(device).Set(float64(s.ModuleVoltage) / 1000)
	current.WithLabelValues(device).Set(float64(s.Current) / 1000)

	temperature.WithLabelValues(device, "max").Set(s.MaxTemperature)
	temperature.WithLabelValues(device, "min").Set(s.MinTemperature)

	capacity.WithLabelValues(device, "remaining").Set(float64(s.RemainingCapacity) / 1000)
	capacity.WithLabelValues(device, "full_charge").Set(float64(s.FullChargeCapacity) / 1000)
	capacity.WithLabelValues(device, "design").Set(float64(s.DesignCapacity) / 1000)

	stateOfCharge.WithLabelValues(device, "absolute").Set(float64(s.AbsoluteStateOfCharge))
	stateOfCharge.WithLabelValues(device, "relative").Set(float64(s.RelativeStateOfCharge))
	stateOfHealth.WithLabelValues(device).Set(float64(s.StateOfHealth))

	for _, r := range s.Faults {
		faultState.WithLabelValues(device, r.Item.String()).Set(faultValue(r.State))
	}
}

// RecordPollFailure marks the device down. Readings from the last
// successful poll are left in place.
func RecordPollFailure(device string) {
	RegisterMetrics()
	up.WithLabelValues(device).Set(0)
}

func faultValue(s fault.State) float64 {
	switch s {
	case fault.OK:
		return 0
	case fault.NG:
		return 1
	default:
		return -1
	}
}
