package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/ghgcalc/internal/carbon"
	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/factors"
)

const tabPadding = 2

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

//nolint:gochecknoglobals // Shared styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	totalStyle = lipgloss.NewStyle().Bold(true)
)

// formatKg renders kg CO2e with two decimals and thousand separators.
func formatKg(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// outputFormat resolves --output, then output.default_format, then table
// on a terminal and json otherwise.
func (a *app) outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = a.cfg.Output.DefaultFormat
	}
	if format == "" {
		if a.stdoutIsTerminal() {
			return config.FormatTable, nil
		}
		return config.FormatJSON, nil
	}
	switch format {
	case config.FormatTable, config.FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use %q or %q", format, config.FormatTable, config.FormatJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func renderScope1(w io.Writer, out carbon.Scope1Output) error {
	fmt.Fprintln(w, titleStyle.Render("Scope 1: direct emissions"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tCATEGORY\tFUEL/REFRIGERANT\tKG CO2E")
	for _, r := range out.Breakdown {
		kind := string(r.FuelType)
		if kind == "" {
			kind = string(r.RefrigerantType)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Source, r.Category, kind, formatKg(r.CO2e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, totalStyle.Render("Total: "+formatKg(out.TotalCO2e)+" kg CO2e"))
	return nil
}

func renderScope2(w io.Writer, out carbon.Scope2Output) error {
	fmt.Fprintln(w, titleStyle.Render("Scope 2: purchased energy"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tKG CO2")
	for _, key := range []carbon.Scope2Key{carbon.Scope2Electricity, carbon.Scope2DistrictHeating} {
		if v, ok := out.Breakdown[key]; ok {
			fmt.Fprintf(tw, "%s\t%s\n", key, formatKg(v))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, totalStyle.Render("Total: "+formatKg(out.TotalCO2Emissions)+" kg CO2"))
	return nil
}

func renderScope3(w io.Writer, out carbon.Scope3Output) error {
	fmt.Fprintln(w, titleStyle.Render("Scope 3: value chain"))
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tSUBTYPE\tKG CO2E")
	for s := carbon.SubtypeWaterSupply; s <= carbon.SubtypeTaxiBusTravel; s++ {
		if v, ok := out.Breakdown.Get(s); ok {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Group(), s, formatKg(v))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, totalStyle.Render("Total: "+formatKg(out.TotalCO2eEmissions)+" kg CO2e"))
	return nil
}

func renderReport(w io.Writer, env reportEnvelope) error {
	fmt.Fprintln(w, titleStyle.Render("Emissions report "+env.ReportID))
	fmt.Fprintf(w, "Factors: %s\n\n", env.FactorsVersion)

	out := env.Report
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tKG CO2E")
	fmt.Fprintf(tw, "Scope 1\t%s\n", formatKg(out.Scope1.TotalCO2e))
	fmt.Fprintf(tw, "Scope 2\t%s\n", formatKg(out.Scope2.TotalCO2Emissions))
	fmt.Fprintf(tw, "Scope 3\t%s\n", formatKg(out.Scope3.TotalCO2eEmissions))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, totalStyle.Render("Total: "+formatKg(out.TotalCO2e)+" kg CO2e"))

	for _, section := range []func() error{
		func() error { return renderScope1(w, out.Scope1) },
		func() error { return renderScope2(w, out.Scope2) },
		func() error { return renderScope3(w, out.Scope3) },
	} {
		fmt.Fprintln(w)
		if err := section(); err != nil {
			return err
		}
	}
	return nil
}

func renderFactors(w io.Writer, snap factors.Snapshot) error {
	fmt.Fprintln(w, titleStyle.Render("Emission factors "+snap.Version))
	fmt.Fprintf(w, "Schema: %s\nOrigin: %s\nSource: %s\n\n", snap.SchemaVersion, snap.Origin, snap.Source)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "FUEL\tDENSITY KG/L\tCALORIFIC\tCO2 KG/GJ\tCH4 KG/GJ\tN2O KG/GJ")
	for _, f := range snap.Fuels {
		calorific := "-"
		if f.CalorificValue > 0 {
			calorific = fmt.Sprintf("%g %s", f.CalorificValue, f.CalorificUnit)
		}
		density := "-"
		if f.DensityKgPerL > 0 {
			density = fmt.Sprintf("%g", f.DensityKgPerL)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\n",
			f.Name, density, calorific, f.Factors.CO2, f.Factors.CH4, f.Factors.N2O)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "REFRIGERANT\tGWP")
	for _, r := range snap.Refrigerants {
		fmt.Fprintf(tw, "%s\t%g\n", r.Name, r.GWP)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE CLASS\tFUEL\tG/KM")
	for _, p := range snap.Fleet {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", p.VehicleClass, p.Fuel, p.ConsumptionGPerKm)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "FACTOR\tVALUE")
	fmt.Fprintf(tw, "electricity\t%g kg/MWh\n", snap.ElectricityKgPerMWh)
	fmt.Fprintf(tw, "district_heating\t%g kg/GJ\n", snap.DistrictHeatingKgPerGJ)
	goods := make([]string, 0, len(snap.Goods))
	for k := range snap.Goods {
		goods = append(goods, string(k))
	}
	sort.Strings(goods)
	for _, k := range goods {
		fmt.Fprintf(tw, "%s\t%g\n", k, snap.Goods[factors.GoodsKey(k)])
	}
	for _, r := range snap.Road {
		fmt.Fprintf(tw, "%s\t%g kg/km\n", r.Vehicle, r.CO2eKgPerKm)
	}
	return tw.Flush()
}
