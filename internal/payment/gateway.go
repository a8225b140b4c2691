// Package payment implements the pluggable payment capability. The only
// real-looking implementation is a simulator: the backend deliberately stops
// short of integrating an actual gateway.
package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movietick/booking-backend/internal/domain"
)

const defaultSuccessRate = 0.9

// SimulatedGateway validates payment details like a real acquirer would and
// then approves a configurable fraction of attempts. The random source and
// clock are injectable so tests stay deterministic.
type SimulatedGateway struct {
	successRate float64
	latency     time.Duration
	randFloat   func() float64
	now         func() time.Time
}

type Option func(*SimulatedGateway)

func WithSuccessRate(rate float64) Option {
	return func(g *SimulatedGateway) {
		g.successRate = rate
	}
}

func WithLatency(d time.Duration) Option {
	return func(g *SimulatedGateway) {
		g.latency = d
	}
}

func WithRandSource(f func() float64) Option {
	return func(g *SimulatedGateway) {
		g.randFloat = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *SimulatedGateway) {
		g.now = now
	}
}

func NewSimulatedGateway(opts ...Option) *SimulatedGateway {
	g := &SimulatedGateway{
		successRate: defaultSuccessRate,
		randFloat:   rand.Float64,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *SimulatedGateway) Process(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	if reason, ok := validateDetails(req.Details); !ok {
		return domain.PaymentResult{
			Status:        domain.PaymentResultFailed,
			FailureReason: reason,
			PaymentDate:   g.now(),
		}, nil
	}

	if g.latency > 0 {
		select {
		case <-time.After(g.latency):
		case <-ctx.Done():
			return domain.PaymentResult{}, ctx.Err()
		}
	}

	transactionID := fmt.Sprintf("TXN_%d", g.now().UnixMilli())
	orderID := "ORDER_" + randomSuffix(8)

	if g.randFloat() >= g.successRate {
		return domain.PaymentResult{
			Status:         domain.PaymentResultFailed,
			TransactionID:  transactionID,
			GatewayOrderID: orderID,
			FailureReason:  "payment declined by bank",
			PaymentDate:    g.now(),
		}, nil
	}

	return domain.PaymentResult{
		Status:           domain.PaymentResultSuccess,
		TransactionID:    transactionID,
		GatewayOrderID:   orderID,
		GatewayPaymentID: "PAY_" + randomSuffix(8),
		PaymentDate:      g.now(),
	}, nil
}

func randomSuffix(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n])
}

func validateDetails(d domain.PaymentDetails) (string, bool) {
	switch d.Method {
	case domain.PaymentMethodCreditCard, domain.PaymentMethodDebitCard:
		if len(d.CardNumber) < 13 || d.CardHolderName == "" ||
			d.ExpiryMonth < 1 || d.ExpiryMonth > 12 || d.ExpiryYear == 0 || len(d.CVV) < 3 {
			return "invalid card details", false
		}
	case domain.PaymentMethodUPI:
		if len(d.UpiID) <= 5 || !strings.Contains(d.UpiID, "@") {
			return "invalid UPI id", false
		}
	case domain.PaymentMethodWallet:
		if d.WalletType == "" || len(d.WalletPhone) != 10 {
			return "invalid wallet details", false
		}
	case domain.PaymentMethodNetBanking:
		if len(d.BankCode) <= 2 {
			return "invalid bank code", false
		}
	default:
		return "unsupported payment method", false
	}

	return "", true
}

// StaticGateway is a deterministic test double that always returns the
// configured result.
type StaticGateway struct {
	Result domain.PaymentResult
	Err    error
}

func (g *StaticGateway) Process(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	if g.Err != nil {
		return domain.PaymentResult{}, g.Err
	}

	return g.Result, nil
}
