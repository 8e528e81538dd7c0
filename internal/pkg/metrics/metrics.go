package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_completed_total",
		Help:      "Number of successfully committed checkouts.",
	})

	CheckoutFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkout_failed_total",
		Help:      "Number of checkouts rejected or aborted, validation and commit phase combined.",
	})

	CartAdmissionRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cart_admission_rejected_total",
		Help:      "Number of add-to-cart requests rejected by the stock admission check.",
	})
)
