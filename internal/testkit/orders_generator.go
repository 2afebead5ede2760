package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// OrdersGeneratorConfig configures the sample orders generator
type OrdersGeneratorConfig struct {
	CustomerCount    int       `json:"customer_count"`
	OrderCount       int       `json:"order_count"`
	MissingRate      float64   `json:"missing_rate"` // share of Amount cells left empty
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Seed             int64     `json:"seed"`
	IncludeCustomers bool      `json:"include_customers"`
}

// DefaultOrdersConfig returns sensible defaults for sample order generation
func DefaultOrdersConfig() OrdersGeneratorConfig {
	return OrdersGeneratorConfig{
		CustomerCount: 25,
		OrderCount:    200,
		MissingRate:   0.03,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		Seed:          42,
	}
}

// OrdersGenerator produces deterministic order sheets for demos and tests
type OrdersGenerator struct {
	config OrdersGeneratorConfig
	rng    *rand.Rand
}

// NewOrdersGenerator creates a generator seeded from config
func NewOrdersGenerator(config OrdersGeneratorConfig) *OrdersGenerator {
	return &OrdersGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Orders builds the orders workbook
func (g *OrdersGenerator) Orders() *Workbook {
	wb := NewWorkbook("Orders").
		Row("OrderID", "CustomerID", "Date", "Region", "Channel", "PaymentMethod", "Amount")

	for i := 0; i < g.config.OrderCount; i++ {
		var amount interface{}
		if g.rng.Float64() >= g.config.MissingRate {
			amount = g.randomAmount()
		}
		wb.Row(
			fmt.Sprintf("O%05d", i+1),
			g.customerID(g.rng.Intn(max(g.config.CustomerCount, 1))),
			g.randomTimeInRange(g.config.StartDate, g.config.EndDate).Format("2006-01-02"),
			g.randomRegion(),
			g.randomChannel(),
			g.randomPaymentMethod(),
			amount,
		)
	}
	return wb
}

// Customers builds a customer workbook whose IDs match the orders' CustomerID column
func (g *OrdersGenerator) Customers() *Workbook {
	wb := NewWorkbook("Customers").Row("CustomerID", "Country", "Active")
	for i := 0; i < g.config.CustomerCount; i++ {
		wb.Row(g.customerID(i), g.randomCountry(), g.rng.Float64() < 0.8)
	}
	return wb
}

func (g *OrdersGenerator) customerID(i int) string {
	return fmt.Sprintf("C%04d", i+1)
}

// randomAmount draws a log-normal order value rounded to cents
func (g *OrdersGenerator) randomAmount() float64 {
	v := math.Exp(3.5 + 0.8*g.rng.NormFloat64())
	return math.Round(v*100) / 100
}

func (g *OrdersGenerator) randomTimeInRange(start, end time.Time) time.Time {
	if start.After(end) {
		start, end = end, start
	}
	duration := end.Sub(start)
	if duration <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(duration))))
}

func (g *OrdersGenerator) randomRegion() string {
	return g.weighted([]string{"East", "West", "North", "South"}, []float64{0.35, 0.3, 0.2, 0.15})
}

func (g *OrdersGenerator) randomChannel() string {
	return g.weighted([]string{"organic", "paid_search", "social", "email", "direct"}, []float64{0.4, 0.3, 0.15, 0.1, 0.05})
}

func (g *OrdersGenerator) randomPaymentMethod() string {
	return g.weighted([]string{"credit_card", "debit_card", "paypal", "bank_transfer"}, []float64{0.5, 0.25, 0.15, 0.1})
}

func (g *OrdersGenerator) randomCountry() string {
	countries := []string{"US", "CA", "GB", "DE", "FR", "AU", "JP"}
	return countries[g.rng.Intn(len(countries))]
}

func (g *OrdersGenerator) weighted(values []string, weights []float64) string {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if r <= cumulative {
			return values[i]
		}
	}
	return values[0]
}
