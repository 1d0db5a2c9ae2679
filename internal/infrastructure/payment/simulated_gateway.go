package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/payment"
)

// approvalRates is the chance a simulated authorization succeeds, per method
var approvalRates = map[payment.Method]float64{
	payment.MethodUPI:        0.95,
	payment.MethodCard:       0.90,
	payment.MethodNetBanking: 0.85,
	payment.MethodWallet:     0.92,
	payment.MethodCOD:        1.0,
}

// SimulatedGateway approves charges at a fixed rate per payment method.
// Captures of an approved authorization always succeed.
type SimulatedGateway struct {
	mu      sync.Mutex
	rng     *rand.Rand
	latency time.Duration
}

// SimulatedOption configures a SimulatedGateway
type SimulatedOption func(*SimulatedGateway)

// WithSeed makes the outcome sequence reproducible
func WithSeed(seed uint64) SimulatedOption {
	return func(g *SimulatedGateway) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLatency delays each call
func WithLatency(d time.Duration) SimulatedOption {
	return func(g *SimulatedGateway) {
		g.latency = d
	}
}

// NewSimulatedGateway creates a simulated gateway
func NewSimulatedGateway(opts ...SimulatedOption) *SimulatedGateway {
	g := &SimulatedGateway{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements payment.Gateway
func (g *SimulatedGateway) Name() string {
	return "simulated"
}

// Authorize implements payment.Gateway
func (g *SimulatedGateway) Authorize(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	if err := g.wait(ctx); err != nil {
		return payment.GatewayResult{}, err
	}
	rate, ok := approvalRates[req.Method]
	if !ok {
		return payment.GatewayResult{Reason: fmt.Sprintf("unsupported method %q", req.Method)}, nil
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	if roll >= rate {
		return payment.GatewayResult{Reason: "declined by issuer"}, nil
	}
	ref := "SIM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	return payment.GatewayResult{Approved: true, Reference: ref}, nil
}

// Capture implements payment.Gateway
func (g *SimulatedGateway) Capture(ctx context.Context, req payment.GatewayRequest) (payment.GatewayResult, error) {
	if err := g.wait(ctx); err != nil {
		return payment.GatewayResult{}, err
	}
	if req.Reference == "" {
		return payment.GatewayResult{Reason: "missing authorization reference"}, nil
	}
	return payment.GatewayResult{Approved: true, Reference: req.Reference}, nil
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ payment.Gateway = (*SimulatedGateway)(nil)
