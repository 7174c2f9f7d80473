package definition

// KeyboardType distinguishes manuals from pedals.
type KeyboardType string

const (
	TypeManual KeyboardType = "manual"
	TypePedal  KeyboardType = "pedal"
)

// ButtonKind is the kind of an interface button.
type ButtonKind string

const (
	KindStop    ButtonKind = "stop"
	KindTremul  ButtonKind = "tremul"
	KindCoupler ButtonKind = "coupler"
)

// Instrument is a parsed definition. All indices are 1-based and
// contiguous within their parent; a reference of 0 means absent.
type Instrument struct {
	Label     string     `yaml:"label"`
	Tuning    *Tuning    `yaml:"tuning,omitempty"`
	Keyboards []Keyboard `yaml:"keyboards"`
	Divisions []Division `yaml:"divisions"`
	Groups    []Group    `yaml:"groups"`
}

// Tuning is the base pitch and temperament.
type Tuning struct {
	Base        float64 `yaml:"base"`
	Temperament int     `yaml:"temperament"`
}

// Keyboard is a manual or pedal. Manuals and pedals share one index
// sequence.
type Keyboard struct {
	Type  KeyboardType `yaml:"type"`
	Label string       `yaml:"label"`
	Index int          `yaml:"index"`
}

// Division is a set of ranks sounding together.
type Division struct {
	Label    string `yaml:"label"`
	Index    int    `yaml:"index"`
	Keyboard int    `yaml:"keyboard,omitempty"`
	Section  int    `yaml:"section,omitempty"`
	Ranks    []Rank `yaml:"ranks"`
	Swell    bool   `yaml:"swell"`
}

// Rank is a pipe rank of a division.
type Rank struct {
	Index int    `yaml:"index"`
	Pan   string `yaml:"pan"`
	Delay int    `yaml:"delay"`
	File  string `yaml:"file"`
}

// Group is an interface group of buttons.
type Group struct {
	Label   string   `yaml:"label"`
	Index   int      `yaml:"index"`
	Buttons []Button `yaml:"buttons"`
}

// Button is a stop, tremulant or coupler switch.
type Button struct {
	Kind     ButtonKind `yaml:"kind"`
	Index    int        `yaml:"index"`
	Label    string     `yaml:"label"`
	Mnemonic string     `yaml:"mnemonic,omitempty"`
	Keyboard int        `yaml:"keyboard,omitempty"`
	Division int        `yaml:"division,omitempty"`
	Rank     int        `yaml:"rank,omitempty"`
}

// Rank returns the rank a stop button sounds, or nil.
func (inst *Instrument) Rank(b Button) *Rank {
	if b.Division < 1 || b.Division > len(inst.Divisions) {
		return nil
	}
	d := &inst.Divisions[b.Division-1]
	if b.Rank < 1 || b.Rank > len(d.Ranks) {
		return nil
	}
	return &d.Ranks[b.Rank-1]
}

// ButtonCount returns the number of buttons across all groups.
func (inst *Instrument) ButtonCount() int {
	n := 0
	for _, g := range inst.Groups {
		n += len(g.Buttons)
	}
	return n
}
