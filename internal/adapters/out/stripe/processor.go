// Package stripe creates payment intents at Stripe.
package stripe

import (
	"context"
	"errors"
	"strings"

	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var _ ports.PaymentProcessor = (*Processor)(nil)

// Processor is a ports.PaymentProcessor backed by the PaymentIntents API.
// Card is the only payment method offered.
type Processor struct {
	api *client.API
}

// NewProcessor returns a processor authenticating with secretKey. Network
// retries are disabled: a failed call is reported, never repeated.
func NewProcessor(secretKey string) (*Processor, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errs.NewValueIsRequiredError("secretKey")
	}

	backends := &stripego.Backends{
		API: stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
			MaxNetworkRetries: stripego.Int64(0),
		}),
	}
	return NewProcessorWithBackends(secretKey, backends), nil
}

// NewProcessorWithBackends lets tests point the client at a local server.
func NewProcessorWithBackends(secretKey string, backends *stripego.Backends) *Processor {
	return &Processor{api: client.New(secretKey, backends)}
}

func (p *Processor) CreateIntent(ctx context.Context, amount int64, currency string) (payment.Intent, error) {
	params := &stripego.PaymentIntentParams{
		Amount:             stripego.Int64(amount),
		Currency:           stripego.String(strings.ToLower(currency)),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) {
			return payment.Intent{}, errs.NewPaymentProcessorError(stripeErr.Msg, string(stripeErr.Code), err)
		}
		return payment.Intent{}, errs.NewPaymentProcessorError(err.Error(), "", err)
	}

	return payment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
