package carbon

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Scope3Group is a GHG Protocol Scope 3 category group.
type Scope3Group int

// Scope 3 groups in reporting order.
const (
	GroupPurchasedGoodsServices Scope3Group = iota
	GroupWasteGenerated
	GroupBusinessTravel

	numScope3Groups = iota
)

var groupNames = [numScope3Groups]string{
	GroupPurchasedGoodsServices: "purchased_goods_services",
	GroupWasteGenerated:         "waste_generated",
	GroupBusinessTravel:         "business_travel",
}

func (g Scope3Group) String() string {
	if g < 0 || int(g) >= numScope3Groups {
		return fmt.Sprintf("Scope3Group(%d)", int(g))
	}
	return groupNames[g]
}

// Scope3Groups returns every group in reporting order.
func Scope3Groups() []Scope3Group {
	return []Scope3Group{GroupPurchasedGoodsServices, GroupWasteGenerated, GroupBusinessTravel}
}

// Scope3Subtype is a Scope 3 line-item subtype. The zero value means
// "not specified" and is only valid on input, where it triggers inference.
type Scope3Subtype int

// Scope 3 subtypes in reporting order.
const (
	SubtypeUnspecified Scope3Subtype = iota
	SubtypeWaterSupply
	SubtypePaperUsage
	SubtypeSolidWasteDisposal
	SubtypeWastewaterTreatment
	SubtypeAirTravel
	SubtypeRailTravel
	SubtypeTaxiBusTravel

	numScope3Subtypes = iota - 1
)

// subtypeUnrecognized holds a decoded name outside the enumeration so the
// engine, not the decoder, reports it as invalid input.
const subtypeUnrecognized Scope3Subtype = -1

var subtypeInfo = [...]struct {
	name  string
	group Scope3Group
}{
	SubtypeWaterSupply:         {"water_supply", GroupPurchasedGoodsServices},
	SubtypePaperUsage:          {"paper_usage", GroupPurchasedGoodsServices},
	SubtypeSolidWasteDisposal:  {"solid_waste_disposal", GroupWasteGenerated},
	SubtypeWastewaterTreatment: {"wastewater_treatment", GroupWasteGenerated},
	SubtypeAirTravel:           {"air_travel", GroupBusinessTravel},
	SubtypeRailTravel:          {"rail_travel", GroupBusinessTravel},
	SubtypeTaxiBusTravel:       {"taxi_bus_travel", GroupBusinessTravel},
}

func (s Scope3Subtype) valid() bool {
	return s > SubtypeUnspecified && int(s) <= numScope3Subtypes
}

func (s Scope3Subtype) String() string {
	if s == SubtypeUnspecified {
		return ""
	}
	if s == subtypeUnrecognized {
		return "unrecognized"
	}
	if !s.valid() {
		return fmt.Sprintf("Scope3Subtype(%d)", int(s))
	}
	return subtypeInfo[s].name
}

// Group returns the group the subtype reports under.
func (s Scope3Subtype) Group() Scope3Group {
	if !s.valid() {
		return -1
	}
	return subtypeInfo[s].group
}

// ParseScope3Subtype maps a wire name such as "air_travel" to its subtype.
func ParseScope3Subtype(name string) (Scope3Subtype, bool) {
	for s := SubtypeWaterSupply; int(s) <= numScope3Subtypes; s++ {
		if subtypeInfo[s].name == name {
			return s, true
		}
	}
	return SubtypeUnspecified, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope3Subtype) MarshalText() ([]byte, error) {
	if s != SubtypeUnspecified && !s.valid() {
		return nil, fmt.Errorf("unknown scope 3 subtype %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// decodes to SubtypeUnspecified. Unknown names decode without error and
// are rejected when the line item is resolved.
func (s *Scope3Subtype) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = SubtypeUnspecified
		return nil
	}
	v, ok := ParseScope3Subtype(string(text))
	if !ok {
		v = subtypeUnrecognized
	}
	*s = v
	return nil
}

// Scope3Breakdown accumulates CO2e per subtype. Only subtypes that received
// at least one line item are reported.
type Scope3Breakdown struct {
	values  [numScope3Subtypes]float64
	present [numScope3Subtypes]bool
}

// Add accumulates kg CO2e for a subtype.
func (b *Scope3Breakdown) Add(s Scope3Subtype, co2e float64) {
	if !s.valid() {
		return
	}
	b.values[s-1] += co2e
	b.present[s-1] = true
}

// Get returns the accumulated CO2e for a subtype and whether any line item
// of that subtype was seen.
func (b Scope3Breakdown) Get(s Scope3Subtype) (float64, bool) {
	if !s.valid() {
		return 0, false
	}
	return b.values[s-1], b.present[s-1]
}

// Group returns the reported subtypes of a group with their totals.
func (b Scope3Breakdown) Group(g Scope3Group) map[Scope3Subtype]float64 {
	out := make(map[Scope3Subtype]float64)
	for i := range b.values {
		s := Scope3Subtype(i + 1)
		if b.present[i] && s.Group() == g {
			out[s] = b.values[i]
		}
	}
	return out
}

// Total sums the breakdown in subtype order.
func (b Scope3Breakdown) Total() float64 {
	var total float64
	for i, v := range b.values {
		if b.present[i] {
			total += v
		}
	}
	return total
}

// MarshalJSON renders the nested group -> subtype -> kg form. All three
// groups are always present, empty when unused.
func (b Scope3Breakdown) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]float64, numScope3Groups)
	for _, g := range Scope3Groups() {
		out[g.String()] = map[string]float64{}
	}
	for i, v := range b.values {
		if !b.present[i] {
			continue
		}
		s := Scope3Subtype(i + 1)
		out[s.Group().String()][s.String()] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the nested form produced by MarshalJSON.
func (b *Scope3Breakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed Scope3Breakdown
	for group, entries := range raw {
		for name, v := range entries {
			s, ok := ParseScope3Subtype(name)
			if !ok {
				return fmt.Errorf("breakdown: unknown subtype %q", name)
			}
			if s.Group().String() != group {
				return fmt.Errorf("breakdown: subtype %q does not belong to group %q", name, group)
			}
			parsed.Add(s, v)
		}
	}
	*b = parsed
	return nil
}
