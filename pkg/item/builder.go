package item

import (
	"maps"
	"slices"
	"strings"
)

const (
	PlayerHead = "minecraft:player_head"

	namespace = "minecraft:"
)

// Builder accumulates properties on a draft item. Every setter mutates the draft
// and returns the same builder for chaining. A Builder is not safe for
// concurrent use.
type Builder struct {
	draft Snapshot
}

// New returns a builder for a single stack of the given material. A bare path
// ("diamond") is qualified with the minecraft namespace.
func New(material string) *Builder {
	if !strings.Contains(material, ":") {
		material = namespace + material
	}
	return &Builder{draft: Snapshot{
		material: material,
		count:    1,
		lore:     []string{},
		enchants: map[Enchantment]int{},
	}}
}

// From returns a builder seeded with a copy of s.
func From(s *Snapshot) *Builder {
	b := &Builder{draft: *s}
	b.draft.lore = slices.Clone(s.lore)
	if b.draft.lore == nil {
		b.draft.lore = []string{}
	}
	b.draft.enchants = maps.Clone(s.enchants)
	if b.draft.enchants == nil {
		b.draft.enchants = map[Enchantment]int{}
	}
	return b
}

// SetCount sets the stack size. Values below 1 are ignored; the upper bound is
// left to the host.
func (b *Builder) SetCount(n int) *Builder {
	if n > 0 {
		b.draft.count = n
	}
	return b
}

// Amount is an alias for SetCount.
func (b *Builder) Amount(n int) *Builder { return b.SetCount(n) }

func (b *Builder) SetName(name string) *Builder {
	b.draft.name = name
	return b
}

// SetLore replaces the lore with lines.
func (b *Builder) SetLore(lines ...string) *Builder {
	b.draft.lore = append(make([]string, 0, len(lines)), lines...)
	return b
}

// AddLore appends lines to the lore.
func (b *Builder) AddLore(lines ...string) *Builder {
	b.draft.lore = append(b.draft.lore, lines...)
	return b
}

func (b *Builder) ResetLore() *Builder {
	b.draft.lore = []string{}
	return b
}

// SetEnchant sets e to level, overwriting any previous level. Levels are not
// range checked.
func (b *Builder) SetEnchant(e Enchantment, level int) *Builder {
	b.draft.enchants[e] = level
	return b
}

// Enchant is an alias for SetEnchant.
func (b *Builder) Enchant(e Enchantment, level int) *Builder { return b.SetEnchant(e, level) }

func (b *Builder) RemoveEnchant(e Enchantment) *Builder {
	delete(b.draft.enchants, e)
	return b
}

func (b *Builder) ResetEnchants() *Builder {
	clear(b.draft.enchants)
	return b
}

func (b *Builder) SetDurability(damage int16) *Builder {
	b.draft.damage = damage
	return b
}

// Durability is an alias for SetDurability.
func (b *Builder) Durability(damage int16) *Builder { return b.SetDurability(damage) }

func (b *Builder) AddFlags(flags ...Flag) *Builder {
	for _, f := range flags {
		b.draft.flags |= flagSet(f)
	}
	return b
}

func (b *Builder) RemoveFlags(flags ...Flag) *Builder {
	for _, f := range flags {
		b.draft.flags &^= flagSet(f)
	}
	return b
}

func (b *Builder) SetUnbreakable(unbreakable bool) *Builder {
	b.draft.unbreakable = unbreakable
	return b
}

// SetSkullTexture sets the base64 "textures" property of a player head. It is a
// no-op for any other material.
func (b *Builder) SetSkullTexture(base64Value string) *Builder {
	if b.draft.material == PlayerHead {
		b.draft.texture = base64Value
	}
	return b
}

// SetGlowing toggles the GlowEnchantment/FlagHideEnchants pair: true strips the
// pair, false adds a level 1 GlowEnchantment and hides it from the tooltip.
// The polarity looks inverted; existing layouts rely on it, do not flip it.
func (b *Builder) SetGlowing(glowing bool) *Builder {
	if glowing {
		return b.RemoveEnchant(GlowEnchantment).RemoveFlags(FlagHideEnchants)
	}
	return b.SetEnchant(GlowEnchantment, 1).AddFlags(FlagHideEnchants)
}

// Glow is SetGlowing(true).
func (b *Builder) Glow() *Builder { return b.SetGlowing(true) }

// Build returns an immutable snapshot of the current draft. It may be called any
// number of times; later mutations do not affect earlier snapshots.
func (b *Builder) Build() *Snapshot {
	s := b.draft
	s.lore = slices.Clone(b.draft.lore)
	s.enchants = maps.Clone(b.draft.enchants)
	return &s
}

func (b *Builder) Material() string { return b.draft.material }

func (b *Builder) Count() int { return b.draft.count }

func (b *Builder) Name() string { return b.draft.name }

// Lore returns a copy of the draft lore.
func (b *Builder) Lore() []string { return slices.Clone(b.draft.lore) }

// Enchants returns a copy of the draft enchantments.
func (b *Builder) Enchants() map[Enchantment]int { return maps.Clone(b.draft.enchants) }

func (b *Builder) Flags() []Flag { return b.draft.flags.list() }

func (b *Builder) Unbreakable() bool { return b.draft.unbreakable }

// Glowing reports whether the draft carries any enchantment.
func (b *Builder) Glowing() bool { return len(b.draft.enchants) > 0 }
