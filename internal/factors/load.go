package factors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the range of data set schema versions this build can read.
const SupportedSchema = ">= 1.0.0, < 2.0.0"

// Format identifies the encoding of a factor data set.
type Format int

const (
	// FormatJSON is the default encoding, used by the embedded data set.
	FormatJSON Format = iota
	// FormatYAML is accepted for operator-supplied data sets.
	FormatYAML
)

// NewClientFromFile creates a Client from an operator-supplied data set.
// Files ending in .yaml or .yml are decoded as YAML; anything else as JSON.
// The file replaces the embedded defaults entirely.
func NewClientFromFile(path string, logger zerolog.Logger) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor data set: %w", err)
	}
	return newClient(data, FormatFromPath(path), path, logger)
}

// NewClientFromBytes creates a Client from raw data set bytes.
func NewClientFromBytes(data []byte, format Format, logger zerolog.Logger) (*Client, error) {
	return newClient(data, format, "inline", logger)
}

// FormatFromPath picks the data set format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// init parses the data set exactly once
func (c *Client) init() error {
	c.once.Do(func() {
		var data dataSet
		var err error
		switch c.format {
		case FormatYAML:
			err = yaml.Unmarshal(c.raw, &data)
		default:
			err = json.Unmarshal(c.raw, &data)
		}
		if err != nil {
			c.err = fmt.Errorf("failed to parse factor data set %s: %w", c.origin, err)
			return
		}

		if err := checkSchema(data.SchemaVersion); err != nil {
			c.err = fmt.Errorf("factor data set %s: %w", c.origin, err)
			return
		}

		if err := c.buildIndexes(data); err != nil {
			c.err = fmt.Errorf("factor data set %s: %w", c.origin, err)
			return
		}

		c.version = data.Version
		c.schemaVersion = data.SchemaVersion
		c.source = data.Source

		c.logger.Debug().
			Str("origin", c.origin).
			Str("version", c.version).
			Int("fuels", len(c.fuels)).
			Int("refrigerants", len(c.refrigerants)).
			Msg("factor data set loaded")

		// The raw bytes are no longer needed once indexes exist.
		c.raw = nil
	})
	return c.err
}

// checkSchema verifies the data set schema version is within SupportedSchema.
func checkSchema(schemaVersion string) error {
	if schemaVersion == "" {
		return errors.New("schema_version is required")
	}
	v, err := semver.NewVersion(schemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", schemaVersion, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported schema_version %s (supported: %s)", schemaVersion, SupportedSchema)
	}
	return nil
}

// buildIndexes validates each section and fills the lookup maps.
//
//nolint:gocognit // One loop per data set section; splitting adds no clarity.
func (c *Client) buildIndexes(data dataSet) error {
	c.fuels = make(map[string]Fuel, len(data.Fuels))
	for i, f := range data.Fuels {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("fuels[%d]: name is required", i)
		}
		if f.DensityKgPerL < 0 || f.CalorificValue < 0 || f.CO2 < 0 || f.CH4 < 0 || f.N2O < 0 {
			return fmt.Errorf("fuels[%d] %q: values must not be negative", i, f.Name)
		}
		calorificUnit := f.CalorificUnit
		if calorificUnit == "" {
			calorificUnit = CalorificPerKg
		}
		if calorificUnit != CalorificPerKg && calorificUnit != CalorificPerM3 {
			return fmt.Errorf("fuels[%d] %q: unsupported calorific_unit %q", i, f.Name, f.CalorificUnit)
		}

		gases := GasFactors{CO2: f.CO2, CH4: f.CH4, N2O: f.N2O}
		switch f.FactorUnit {
		case "", FactorKgPerGJ:
		case FactorGPerMMBtu:
			gases = GasFactors{
				CO2: GMMBtuToKgGJ(f.CO2),
				CH4: GMMBtuToKgGJ(f.CH4),
				N2O: GMMBtuToKgGJ(f.N2O),
			}
		default:
			return fmt.Errorf("fuels[%d] %q: unsupported factor_unit %q", i, f.Name, f.FactorUnit)
		}

		key := normalizeKey(f.Name)
		if _, dup := c.fuels[key]; dup {
			c.logger.Warn().Str("fuel", f.Name).Msg("duplicate fuel entry, last one wins")
		}
		c.fuels[key] = Fuel{
			Name:           f.Name,
			DensityKgPerL:  f.DensityKgPerL,
			CalorificValue: f.CalorificValue,
			CalorificUnit:  calorificUnit,
			Factors:        gases,
		}
	}

	c.refrigerants = make(map[string]Refrigerant, len(data.Refrigerants))
	for i, r := range data.Refrigerants {
		if strings.TrimSpace(r.Name) == "" || r.GWP <= 0 {
			return fmt.Errorf("refrigerants[%d]: name and a positive gwp are required", i)
		}
		c.refrigerants[normalizeKey(r.Name)] = Refrigerant{Name: r.Name, GWP: r.GWP}
	}

	c.fleet = make(map[string]FleetProfile, len(data.Fleet))
	for i, f := range data.Fleet {
		if strings.TrimSpace(f.VehicleClass) == "" || f.ConsumptionGPerKm <= 0 {
			return fmt.Errorf("fleet[%d]: vehicle_class and a positive consumption_g_per_km are required", i)
		}
		if _, ok := c.fuels[normalizeKey(f.Fuel)]; !ok {
			return fmt.Errorf("fleet[%d] %q: unknown fuel %q", i, f.VehicleClass, f.Fuel)
		}
		c.fleet[normalizeKey(f.VehicleClass)] = FleetProfile(f)
	}

	c.air = make(map[HaulClass]AirFactors, len(data.Air))
	for i, a := range data.Air {
		haul, ok := parseHaul(a.Haul)
		if !ok {
			return fmt.Errorf("air[%d]: unknown haul %q (want short, medium or long)", i, a.Haul)
		}
		c.air[haul] = AirFactors{
			CO2KgPerMile: a.CO2KgPerMile,
			CH4GPerMile:  a.CH4GPerMile,
			N2OGPerMile:  a.N2OGPerMile,
		}
	}

	c.road = make(map[string]RoadFactor, len(data.Road))
	for i, r := range data.Road {
		if strings.TrimSpace(r.Vehicle) == "" || r.CO2eKgPerKm <= 0 {
			return fmt.Errorf("road[%d]: vehicle and a positive co2e_kg_per_km are required", i)
		}
		c.road[normalizeKey(r.Vehicle)] = RoadFactor(r)
	}

	c.goods = make(map[GoodsKey]float64, len(data.Goods))
	for k, v := range data.Goods {
		if v <= 0 {
			return fmt.Errorf("goods %q: factor must be positive", k)
		}
		c.goods[GoodsKey(normalizeKey(k))] = v
	}

	if data.Rail != (railEntry{}) {
		rail := RailFactors(data.Rail)
		c.rail = &rail
	}
	c.electricityKgPerMWh = data.Scope2.ElectricityKgPerMWh
	c.districtHeatingKgPerGJ = data.Scope2.DistrictHeatingKgPerGJ
	return nil
}

func parseHaul(s string) (HaulClass, bool) {
	for _, h := range []HaulClass{HaulShort, HaulMedium, HaulLong} {
		if normalizeKey(s) == h.key() {
			return h, true
		}
	}
	return 0, false
}
