package item

import "strings"

// Flag hides one category of default tooltip information.
type Flag uint16

const (
	FlagHideEnchants Flag = 1 << iota
	FlagHideAttributes
	FlagHideUnbreakable
	FlagHideDestroys
	FlagHidePlacedOn
	FlagHideAdditionalTooltip
	FlagHideDye
	FlagHideArmorTrim
)

var flagNames = map[Flag]string{
	FlagHideEnchants:          "HIDE_ENCHANTS",
	FlagHideAttributes:        "HIDE_ATTRIBUTES",
	FlagHideUnbreakable:       "HIDE_UNBREAKABLE",
	FlagHideDestroys:          "HIDE_DESTROYS",
	FlagHidePlacedOn:          "HIDE_PLACED_ON",
	FlagHideAdditionalTooltip: "HIDE_ADDITIONAL_TOOLTIP",
	FlagHideDye:               "HIDE_DYE",
	FlagHideArmorTrim:         "HIDE_ARMOR_TRIM",
}

// AllFlags lists every known flag in bit order.
var AllFlags = []Flag{
	FlagHideEnchants,
	FlagHideAttributes,
	FlagHideUnbreakable,
	FlagHideDestroys,
	FlagHidePlacedOn,
	FlagHideAdditionalTooltip,
	FlagHideDye,
	FlagHideArmorTrim,
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	var parts []string
	for _, single := range AllFlags {
		if f&single != 0 {
			parts = append(parts, flagNames[single])
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// flagSet is a bitmask of flags.
type flagSet Flag

func (s flagSet) has(f Flag) bool { return Flag(s)&f == f }

func (s flagSet) list() []Flag {
	out := make([]Flag, 0, len(AllFlags))
	for _, f := range AllFlags {
		if s.has(f) {
			out = append(out, f)
		}
	}
	return out
}
