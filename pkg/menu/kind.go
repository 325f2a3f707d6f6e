package menu

// Kind is a window layout shape offered by the host.
type Kind int

const (
	Chest Kind = iota // generic 9-wide grid, 1 to 6 rows
	Dispenser
	Dropper
	Hopper
	Furnace
	Workbench
	Anvil
	Beacon
	Brewing
	Enchanting
	ShulkerBox
	Barrel
)

const (
	RowWidth = 9
	MaxRows  = 6
)

type kindInfo struct {
	name  string
	title string
	size  int
	grid  bool
}

var kinds = [...]kindInfo{
	Chest:      {"chest", "Chest", 27, true},
	Dispenser:  {"dispenser", "Dispenser", 9, false},
	Dropper:    {"dropper", "Dropper", 9, false},
	Hopper:     {"hopper", "Item Hopper", 5, false},
	Furnace:    {"furnace", "Furnace", 3, false},
	Workbench:  {"workbench", "Crafting", 10, false},
	Anvil:      {"anvil", "Repairing", 3, false},
	Beacon:     {"beacon", "Beacon", 1, false},
	Brewing:    {"brewing", "Brewing", 5, false},
	Enchanting: {"enchanting", "Enchanting", 2, false},
	ShulkerBox: {"shulker_box", "Shulker Box", 27, false},
	Barrel:     {"barrel", "Barrel", 27, false},
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k >= 0 && int(k) < len(kinds) }

// Grid reports whether the kind is the variable-size 9-wide grid.
func (k Kind) Grid() bool { return k.Valid() && kinds[k].grid }

// DefaultSize returns the slot count used when none is given.
func (k Kind) DefaultSize() int {
	if !k.Valid() {
		return 0
	}
	return kinds[k].size
}

// DefaultTitle returns the title the host shows for the kind by default.
func (k Kind) DefaultTitle() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].title
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kinds[k].name
}
