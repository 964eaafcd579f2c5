package components

// Species identifies a concrete creature kind.
type Species uint8

const (
	SpeciesNone Species = iota // not instantiable
	SpeciesFish
	SpeciesCrab
	SpeciesJellyfish
	SpeciesShrimp
	SpeciesMerman
	SpeciesMermaid
	SpeciesShark
	speciesCount
)

// Family is the behavioral lineage that gates reproduction.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyFish
	FamilyCrab
	FamilyJellyfish
	FamilyShrimp
	FamilyMerfolk
	FamilyShark
)

// Movement selects the base movement rule for a species.
type Movement uint8

const (
	MoveSeek     Movement = iota // seek food, else random walk
	MoveBottom                   // horizontal seek pinned to the bottom row
	MovePatrol                   // seek, then a fixed right/down/left/up cycle
	MoveHunt                     // chase the nearest non-predator
)

// Axis selects the coordinate a Nudge perturbs.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Nudge is one randomized perturbation applied after the base move.
// Delta 0 means a random step of -1 or +1. An Else nudge only rolls when
// the nudge before it did not fire.
type Nudge struct {
	Axis   Axis
	Chance float64
	Delta  int
	Else   bool
}

// SpeciesInfo is the static description of a species.
type SpeciesInfo struct {
	Tag          string
	Family       Family
	Movement     Movement
	Glyphs       []string
	RareGlyphs   []string
	AllowRare    bool
	RarityChance float64 // 0 = use creature.rarity_chance
	FixedSex     Sex     // SexUnknown = rolled at creation
	Pronouns     bool    // may also take the neutral pronoun class
	Nudges       []Nudge
}

// IsPredator reports whether the species hunts other creatures.
func (i *SpeciesInfo) IsPredator() bool {
	return i.Movement == MoveHunt
}

var (
	merman  = "\U0001F9DC\u200d\u2642\ufe0f"
	mermaid = "\U0001F9DC\u200d\u2640\ufe0f"
	fairyM  = "\U0001F9DA\u200d\u2642\ufe0f"
	fairyF  = "\U0001F9DA\u200d\u2640\ufe0f"

	// Merfolk occasionally swim up, otherwise sometimes sink.
	merfolkBob = []Nudge{
		{Axis: AxisY, Chance: 0.1, Delta: -1},
		{Axis: AxisY, Chance: 0.2, Delta: 1, Else: true},
	}
)

var speciesTable = [speciesCount]SpeciesInfo{
	SpeciesNone: {Tag: ""},
	SpeciesFish: {
		Tag: "Fish", Family: FamilyFish, Movement: MoveSeek,
		Glyphs: []string{"🐠", "🐟"}, RareGlyphs: []string{"🐡"}, AllowRare: true,
		Nudges: []Nudge{
			{Axis: AxisX, Chance: 0.2},
			{Axis: AxisY, Chance: 0.2},
		},
	},
	SpeciesCrab: {
		Tag: "Crab", Family: FamilyCrab, Movement: MoveBottom,
		Glyphs: []string{"🦀"}, RareGlyphs: []string{"🦞"}, AllowRare: true,
	},
	SpeciesJellyfish: {
		Tag: "Jellyfish", Family: FamilyJellyfish, Movement: MoveSeek,
		Glyphs: []string{"🪼"}, RareGlyphs: []string{"🦑", "🐙"}, AllowRare: true,
		Nudges: []Nudge{
			{Axis: AxisY, Chance: 0.3},
			{Axis: AxisX, Chance: 0.1},
		},
	},
	SpeciesShrimp: {
		Tag: "Shrimp", Family: FamilyShrimp, Movement: MovePatrol,
		Glyphs: []string{"🦐"}, RareGlyphs: []string{"🦞"}, AllowRare: true,
	},
	SpeciesMerman: {
		Tag: "Merman", Family: FamilyMerfolk, Movement: MoveSeek,
		Glyphs: []string{merman}, RareGlyphs: []string{fairyM}, AllowRare: true,
		RarityChance: 0.05, FixedSex: SexMale, Pronouns: true,
		Nudges: append(append([]Nudge{}, merfolkBob...),
			Nudge{Axis: AxisX, Chance: 0.5},
		),
	},
	SpeciesMermaid: {
		Tag: "Mermaid", Family: FamilyMerfolk, Movement: MoveSeek,
		Glyphs: []string{mermaid}, RareGlyphs: []string{fairyF}, AllowRare: true,
		RarityChance: 0.05, FixedSex: SexFemale, Pronouns: true,
		Nudges: append(append([]Nudge{}, merfolkBob...),
			Nudge{Axis: AxisX, Chance: 0.3},
			Nudge{Axis: AxisY, Chance: 0.3},
		),
	},
	SpeciesShark: {
		Tag: "Shark", Family: FamilyShark, Movement: MoveHunt,
		Glyphs: []string{"🦈"},
	},
}

// Info returns the static description of s. Unknown values map to SpeciesNone.
func (s Species) Info() *SpeciesInfo {
	if s >= speciesCount {
		return &speciesTable[SpeciesNone]
	}
	return &speciesTable[s]
}

// String returns the species tag used in save files.
func (s Species) String() string {
	if s == SpeciesNone || s >= speciesCount {
		return "None"
	}
	return speciesTable[s].Tag
}

// Concrete reports whether creatures of this species can be constructed.
func (s Species) Concrete() bool {
	return s > SpeciesNone && s < speciesCount
}

// IsPredator reports whether the species hunts other creatures.
func (s Species) IsPredator() bool {
	return s.Info().IsPredator()
}

// Compatible reports whether two species share a family and may breed.
func Compatible(a, b Species) bool {
	return a.Concrete() && b.Concrete() && a.Info().Family == b.Info().Family
}

// SpeciesByTag looks a species up by its save-file tag.
func SpeciesByTag(tag string) (Species, bool) {
	for s := SpeciesNone + 1; s < speciesCount; s++ {
		if speciesTable[s].Tag == tag {
			return s, true
		}
	}
	return SpeciesNone, false
}

// AllSpecies returns every concrete species in table order.
func AllSpecies() []Species {
	out := make([]Species, 0, speciesCount-1)
	for s := SpeciesNone + 1; s < speciesCount; s++ {
		out = append(out, s)
	}
	return out
}

// GrazerSpecies returns every concrete non-predator species in table order.
func GrazerSpecies() []Species {
	var out []Species
	for _, s := range AllSpecies() {
		if !s.IsPredator() {
			out = append(out, s)
		}
	}
	return out
}
