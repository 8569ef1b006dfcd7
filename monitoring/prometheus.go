package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sifranet/sifra-wallet/logx"
)

type TxFailedReason string

var (
	TxFailedValidation   TxFailedReason = "validation"
	TxFailedCrypto       TxFailedReason = "crypto"
	TxFailedNetwork      TxFailedReason = "network"
	TxFailedTimeout      TxFailedReason = "timeout"
	TxFailedUnauthorized TxFailedReason = "unauthorized"
	TxFailedLedger       TxFailedReason = "ledger_rejected"
	TxFailedUnknown      TxFailedReason = "other"
)

type walletPromMetrics struct {
	walletUpUnixSeconds prometheus.Gauge
	submittedTxCount    prometheus.Counter
	confirmedTxCount    prometheus.Counter
	failedTxCount       *prometheus.CounterVec
	signingDuration     prometheus.Histogram
	submitDuration      prometheus.Histogram
	sessionRestoreCount prometheus.Counter
	sessionClearCount   prometheus.Counter
	panicCount          prometheus.Counter
}

func newWalletPromMetrics() *walletPromMetrics {
	return &walletPromMetrics{
		walletUpUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sifra_wallet_up_timestamp_unix_seconds",
				Help: "Unix timestamp of wallet client start",
			},
		),
		submittedTxCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sifra_wallet_submitted_tx_count",
				Help: "The total number of signed transactions submitted to the ledger gateway",
			},
		),
		confirmedTxCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sifra_wallet_confirmed_tx_count",
				Help: "The total number of submissions acknowledged by the gateway with a tx hash",
			},
		),
		failedTxCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sifra_wallet_failed_tx_count",
				Help: "The total number of send attempts that ended in the error state",
			},
			[]string{"reason"},
		),
		signingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "sifra_wallet_signing_duration_seconds",
				Help: "Duration of local payload hashing and ECDSA signing",
			},
		),
		submitDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "sifra_wallet_submit_duration_seconds",
				Help: "Duration of the gateway submission round trip",
			},
		),
		sessionRestoreCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sifra_wallet_session_restore_count",
				Help: "The total number of sessions restored from durable storage",
			},
		),
		sessionClearCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sifra_wallet_session_clear_count",
				Help: "The total number of session teardowns (logout or 401)",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sifra_wallet_panic_count",
				Help: "The total number of recovered panics in background goroutines",
			},
		),
	}
}

var walletMetrics *walletPromMetrics

// InitMetrics initializes wallet metrics but does not expose them yet.
func InitMetrics() {
	walletMetrics = newWalletPromMetrics()
	walletMetrics.walletUpUnixSeconds.SetToCurrentTime()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func IncreaseSubmittedTxCount() {
	if walletMetrics == nil {
		return
	}
	walletMetrics.submittedTxCount.Inc()
}

func IncreaseConfirmedTxCount() {
	if walletMetrics == nil {
		return
	}
	walletMetrics.confirmedTxCount.Inc()
}

func RecordFailedTx(reason TxFailedReason) {
	if walletMetrics == nil {
		return
	}
	walletMetrics.failedTxCount.With(prometheus.Labels{
		"reason": string(reason),
	}).Inc()
}

func RecordSigningDuration(duration time.Duration) {
	if walletMetrics == nil {
		return
	}
	walletMetrics.signingDuration.Observe(duration.Seconds())
}

func RecordSubmitDuration(duration time.Duration) {
	if walletMetrics == nil {
		return
	}
	walletMetrics.submitDuration.Observe(duration.Seconds())
}

func IncreaseSessionRestoreCount() {
	if walletMetrics == nil {
		return
	}
	walletMetrics.sessionRestoreCount.Inc()
}

func IncreaseSessionClearCount() {
	if walletMetrics == nil {
		return
	}
	walletMetrics.sessionClearCount.Inc()
}

func IncreasePanicCount() {
	if walletMetrics == nil {
		return
	}
	walletMetrics.panicCount.Inc()
}
