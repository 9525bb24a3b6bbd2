package factors

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// slowLookupThreshold is the lookup duration above which a warning is logged.
const slowLookupThreshold = 50 * time.Millisecond

// Table provides emission factor and physical constant lookups.
// Lookups return (value, true) when the key is known and (zero, false)
// otherwise. Keys are matched case-insensitively.
type Table interface {
	// Version returns the data set version label (e.g. "2024.1").
	Version() string

	// Fuel returns the physical properties and per-GJ factors of a fuel.
	Fuel(name string) (Fuel, bool)

	// RefrigerantGWP returns the global warming potential of a refrigerant.
	RefrigerantGWP(name string) (float64, bool)

	// FleetProfile returns typical consumption for a vehicle class.
	FleetProfile(vehicleClass string) (FleetProfile, bool)

	// AirFactors returns per-mile factors for a haul class.
	AirFactors(haul HaulClass) (AirFactors, bool)

	// RailFactors returns rail travel factors.
	RailFactors() (RailFactors, bool)

	// RoadFactor returns kg CO2e per km for a road vehicle type ("taxi", "bus").
	RoadFactor(vehicle string) (float64, bool)

	// ElectricityFactor returns kg CO2 per MWh of purchased electricity.
	ElectricityFactor() (float64, bool)

	// DistrictHeatingFactor returns kg CO2 per GJ of district heating.
	DistrictHeatingFactor() (float64, bool)

	// GoodsFactor returns a single-factor goods or waste coefficient.
	GoodsFactor(key GoodsKey) (float64, bool)
}

// Client implements Table over a parsed factor data set.
type Client struct {
	raw    []byte
	format Format
	origin string
	logger zerolog.Logger

	// Thread-safe initialization
	once sync.Once
	err  error

	version       string
	schemaVersion string
	source        string

	// In-memory indexes, keyed by normalized name (built on first access)
	fuels        map[string]Fuel
	refrigerants map[string]Refrigerant
	fleet        map[string]FleetProfile
	air          map[HaulClass]AirFactors
	road         map[string]RoadFactor
	goods        map[GoodsKey]float64

	rail                   *RailFactors
	electricityKgPerMWh    float64
	districtHeatingKgPerGJ float64
}

// Refrigerant is a refrigerant gas and its GWP.
type Refrigerant struct {
	Name string  `json:"name"`
	GWP  float64 `json:"gwp"`
}

// RoadFactor is a flat per-km factor for a road vehicle type.
type RoadFactor struct {
	Vehicle     string  `json:"vehicle"`
	CO2eKgPerKm float64 `json:"co2e_kg_per_km"`
}

// NewClient creates a Client backed by the embedded default data set.
// It returns a non-nil error if the embedded data cannot be parsed.
func NewClient(logger zerolog.Logger) (*Client, error) {
	return newClient(defaultFactorsJSON, FormatJSON, "embedded", logger)
}

func newClient(data []byte, format Format, origin string, logger zerolog.Logger) (*Client, error) {
	c := &Client{
		raw:    data,
		format: format,
		origin: origin,
		logger: logger.With().Str("component", "factors").Logger(),
	}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// warnIfSlow logs lookups exceeding slowLookupThreshold.
func (c *Client) warnIfSlow(kind, key string, start time.Time) {
	if elapsed := time.Since(start); elapsed > slowLookupThreshold {
		c.logger.Warn().
			Str("lookup", kind).
			Str("key", key).
			Dur("elapsed", elapsed).
			Msg("factor lookup took too long")
	}
}

// Version returns the data set version label.
func (c *Client) Version() string {
	_ = c.init() // Ensure initialization
	return c.version
}

// SchemaVersion returns the data set schema version.
func (c *Client) SchemaVersion() string {
	_ = c.init()
	return c.schemaVersion
}

// Source returns the data set's free-form provenance note.
func (c *Client) Source() string {
	_ = c.init()
	return c.source
}

// Origin returns where the data set was loaded from ("embedded", a file path, "inline").
func (c *Client) Origin() string {
	return c.origin
}

// Fuel returns the properties of a fuel by name.
func (c *Client) Fuel(name string) (Fuel, bool) {
	defer c.warnIfSlow("fuel", name, time.Now())
	if err := c.init(); err != nil {
		return Fuel{}, false
	}
	f, ok := c.fuels[normalizeKey(name)]
	return f, ok
}

// RefrigerantGWP returns the GWP of a refrigerant by name.
func (c *Client) RefrigerantGWP(name string) (float64, bool) {
	defer c.warnIfSlow("refrigerant", name, time.Now())
	if err := c.init(); err != nil {
		return 0, false
	}
	r, ok := c.refrigerants[normalizeKey(name)]
	if !ok {
		return 0, false
	}
	return r.GWP, true
}

// FleetProfile returns the consumption profile of a vehicle class.
func (c *Client) FleetProfile(vehicleClass string) (FleetProfile, bool) {
	defer c.warnIfSlow("fleet", vehicleClass, time.Now())
	if err := c.init(); err != nil {
		return FleetProfile{}, false
	}
	p, ok := c.fleet[normalizeKey(vehicleClass)]
	return p, ok
}

// AirFactors returns per-mile factors for a haul class.
func (c *Client) AirFactors(haul HaulClass) (AirFactors, bool) {
	if err := c.init(); err != nil {
		return AirFactors{}, false
	}
	a, ok := c.air[haul]
	return a, ok
}

// RailFactors returns the rail travel factors, if the data set has them.
func (c *Client) RailFactors() (RailFactors, bool) {
	if err := c.init(); err != nil || c.rail == nil {
		return RailFactors{}, false
	}
	return *c.rail, true
}

// RoadFactor returns kg CO2e per km for a road vehicle type.
func (c *Client) RoadFactor(vehicle string) (float64, bool) {
	defer c.warnIfSlow("road", vehicle, time.Now())
	if err := c.init(); err != nil {
		return 0, false
	}
	r, ok := c.road[normalizeKey(vehicle)]
	if !ok {
		return 0, false
	}
	return r.CO2eKgPerKm, true
}

// ElectricityFactor returns kg CO2 per MWh of purchased electricity.
func (c *Client) ElectricityFactor() (float64, bool) {
	if err := c.init(); err != nil || c.electricityKgPerMWh <= 0 {
		return 0, false
	}
	return c.electricityKgPerMWh, true
}

// DistrictHeatingFactor returns kg CO2 per GJ of district heating.
func (c *Client) DistrictHeatingFactor() (float64, bool) {
	if err := c.init(); err != nil || c.districtHeatingKgPerGJ <= 0 {
		return 0, false
	}
	return c.districtHeatingKgPerGJ, true
}

// GoodsFactor returns a goods or waste coefficient.
func (c *Client) GoodsFactor(key GoodsKey) (float64, bool) {
	if err := c.init(); err != nil {
		return 0, false
	}
	v, ok := c.goods[GoodsKey(normalizeKey(string(key)))]
	return v, ok
}
