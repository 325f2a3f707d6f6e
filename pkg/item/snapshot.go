package item

import (
	"maps"
	"slices"

	"github.com/go-mclib/data/pkg/data/items"
)

// Snapshot is an immutable item stack as presented to a viewer.
// Obtain one from Builder.Build; the zero value is not useful.
type Snapshot struct {
	material    string
	count       int
	name        string
	lore        []string
	enchants    map[Enchantment]int
	flags       flagSet
	damage      int16
	unbreakable bool
	texture     string
}

// Material returns the namespaced item name (e.g. "minecraft:diamond").
func (s *Snapshot) Material() string { return s.material }

// ID returns the numeric item ID from the minecraft:item registry, or -1 if the
// material is unknown to the bundled registry.
func (s *Snapshot) ID() int32 { return items.ItemID(s.material) }

func (s *Snapshot) Count() int { return s.count }

// Name returns the custom display name, or "" if none was set.
func (s *Snapshot) Name() string { return s.name }

// Lore returns a copy of the lore lines. Never nil.
func (s *Snapshot) Lore() []string { return slices.Clone(s.lore) }

// Enchants returns a copy of the enchantment levels. Never nil.
func (s *Snapshot) Enchants() map[Enchantment]int { return maps.Clone(s.enchants) }

// Enchant returns the level of e and whether it is present.
func (s *Snapshot) Enchant(e Enchantment) (int, bool) {
	lvl, ok := s.enchants[e]
	return lvl, ok
}

// Flags returns the set flags in bit order.
func (s *Snapshot) Flags() []Flag { return s.flags.list() }

func (s *Snapshot) HasFlag(f Flag) bool { return s.flags.has(f) }

// Durability returns the damage value.
func (s *Snapshot) Durability() int16 { return s.damage }

func (s *Snapshot) Unbreakable() bool { return s.unbreakable }

// Glowing reports whether the item renders with the enchantment shimmer, which
// is the case whenever it carries any enchantment.
func (s *Snapshot) Glowing() bool { return len(s.enchants) > 0 }

// SkullTexture returns the base64 texture payload of a player head, or "".
func (s *Snapshot) SkullTexture() string { return s.texture }

// Equal reports whether two snapshots describe the same item.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.material == o.material &&
		s.count == o.count &&
		s.name == o.name &&
		slices.Equal(s.lore, o.lore) &&
		maps.Equal(s.enchants, o.enchants) &&
		s.flags == o.flags &&
		s.damage == o.damage &&
		s.unbreakable == o.unbreakable &&
		s.texture == o.texture
}

// DisplayName returns the custom name, falling back to the material name.
func (s *Snapshot) DisplayName() string {
	if s.name != "" {
		return s.name
	}
	return s.material
}
