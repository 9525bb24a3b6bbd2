package carbon

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ghgcalc/internal/factors"
)

// EmissionsCalculator computes Scope 1, 2 and 3 emissions.
type EmissionsCalculator interface {
	Scope1(in Scope1Input) (Scope1Output, error)
	Scope2(in Scope2Input) (Scope2Output, error)
	Scope3(in Scope3Input) (Scope3Output, error)
	Report(ctx context.Context, in ReportInput) (ReportOutput, error)
}

// Calculator implements EmissionsCalculator over a factor table. It holds
// no mutable state and is safe for concurrent use.
type Calculator struct {
	table factors.Table
}

// NewCalculator creates a calculator that resolves defaults from table.
func NewCalculator(table factors.Table) *Calculator {
	return &Calculator{table: table}
}

// Table returns the factor table the calculator resolves defaults from.
func (c *Calculator) Table() factors.Table {
	return c.table
}

// Report computes all three scopes concurrently. The first scope error
// cancels the remaining work and is returned.
func (c *Calculator) Report(ctx context.Context, in ReportInput) (ReportOutput, error) {
	start := time.Now()
	var out ReportOutput

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s1, err := c.Scope1(in.Scope1)
		if err != nil {
			return fmt.Errorf("scope1: %w", err)
		}
		out.Scope1 = s1
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s2, err := c.Scope2(in.Scope2)
		if err != nil {
			return fmt.Errorf("scope2: %w", err)
		}
		out.Scope2 = s2
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s3, err := c.Scope3(in.Scope3)
		if err != nil {
			return fmt.Errorf("scope3: %w", err)
		}
		out.Scope3 = s3
		return nil
	})
	if err := g.Wait(); err != nil {
		return ReportOutput{}, err
	}

	out.TotalCO2e = out.Scope1.TotalCO2e + out.Scope2.TotalCO2Emissions + out.Scope3.TotalCO2eEmissions

	logger.Debug().
		Float64("total_co2e_kg", out.TotalCO2e).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("report calculated")

	return out, nil
}
