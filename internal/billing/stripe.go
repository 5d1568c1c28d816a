// Package billing reports relay usage to Stripe. Metering is optional and
// strictly off the request path: when unconfigured the reporter is inert,
// and when configured a reporting failure is logged and swallowed.
package billing

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/usagerecord"
)

// Reporter increments a Stripe usage record per completed relay request.
type Reporter struct {
	subscriptionItem string
	log              *logrus.Logger
}

// NewReporter configures Stripe metering. Either argument being empty
// returns a disabled reporter.
func NewReporter(apiKey, subscriptionItem string, log *logrus.Logger) *Reporter {
	if apiKey == "" || subscriptionItem == "" {
		return &Reporter{log: log}
	}
	stripe.Key = apiKey
	return &Reporter{subscriptionItem: subscriptionItem, log: log}
}

// Enabled reports whether usage will actually be sent anywhere.
func (r *Reporter) Enabled() bool {
	return r.subscriptionItem != ""
}

// RecordRequest reports one completed relay request for the given login.
// Called after the response stream has closed; never blocks a request and
// never surfaces an error to the caller.
func (r *Reporter) RecordRequest(login string) {
	if !r.Enabled() {
		return
	}

	params := &stripe.UsageRecordParams{
		SubscriptionItem: stripe.String(r.subscriptionItem),
		Quantity:         stripe.Int64(1),
		Timestamp:        stripe.Int64(time.Now().Unix()),
		Action:           stripe.String(stripe.UsageRecordActionIncrement),
	}

	if _, err := usagerecord.New(params); err != nil {
		r.log.WithError(err).WithField("user", login).Warn("failed to record usage")
	}
}
