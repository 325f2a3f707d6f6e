package protocolhost

import (
	"bytes"
	"slices"

	"github.com/Tnze/go-mc/nbt"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/go-mclib/menu/pkg/item"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// ComponentType is an entry of the minecraft:data_component_type registry.
type ComponentType int32

const (
	ComponentDamage             ComponentType = 3
	ComponentUnbreakable        ComponentType = 4
	ComponentCustomName         ComponentType = 5
	ComponentLore               ComponentType = 8
	ComponentEnchantments       ComponentType = 10
	ComponentCanPlaceOn         ComponentType = 11
	ComponentCanBreak           ComponentType = 12
	ComponentAttributeModifiers ComponentType = 13
	ComponentTooltipDisplay     ComponentType = 15
	ComponentDyedColor          ComponentType = 35
	ComponentPotionContents     ComponentType = 42
	ComponentTrim               ComponentType = 47
)

// hiddenBy lists the components each flag hides from the tooltip.
var hiddenBy = map[item.Flag][]ComponentType{
	item.FlagHideEnchants:          {ComponentEnchantments},
	item.FlagHideAttributes:        {ComponentAttributeModifiers},
	item.FlagHideUnbreakable:       {ComponentUnbreakable},
	item.FlagHideDestroys:          {ComponentCanBreak},
	item.FlagHidePlacedOn:          {ComponentCanPlaceOn},
	item.FlagHideAdditionalTooltip: {ComponentPotionContents},
	item.FlagHideDye:               {ComponentDyedColor},
	item.FlagHideArmorTrim:         {ComponentTrim},
}

// EnchantmentIDs maps enchantments to their minecraft:enchantment registry
// entries. The registry is sent by the server during configuration; these are
// the vanilla positions. Servers sending a custom registry must update them.
// Enchantments missing from the map are not encoded.
var EnchantmentIDs = map[item.Enchantment]int32{
	item.AquaAffinity:         0,
	item.BaneOfArthropods:     1,
	item.BlastProtection:      3,
	item.DepthStrider:         7,
	item.Efficiency:           8,
	item.FeatherFalling:       9,
	item.FireAspect:           10,
	item.FireProtection:       11,
	item.Flame:                12,
	item.Fortune:              13,
	item.Infinity:             16,
	item.Knockback:            17,
	item.Looting:              18,
	item.LuckOfTheSea:         20,
	item.Lure:                 21,
	item.Mending:              22,
	item.Power:                25,
	item.ProjectileProtection: 26,
	item.Protection:           27,
	item.Punch:                28,
	item.Respiration:          30,
	item.Sharpness:            32,
	item.SilkTouch:            33,
	item.Smite:                34,
	item.Thorns:               38,
	item.Unbreaking:           39,
}

// textComponent is a plain text component. Item names and lore are italic
// unless told otherwise.
type textComponent struct {
	Text   string `nbt:"text"`
	Italic bool   `nbt:"italic"`
}

func writeText(buf *bytes.Buffer, text string) error {
	enc := nbt.NewEncoder(buf)
	enc.NetworkFormat(true)
	return enc.Encode(textComponent{Text: text}, "")
}

func writeVarInt(buf *bytes.Buffer, v int32) {
	_, _ = pk.VarInt(v).WriteTo(buf)
}

// components returns the data components describing s beyond its type and
// count, ordered by component type.
func components(s *item.Snapshot) ([]ns.SlotComponent, error) {
	var out []ns.SlotComponent
	add := func(typ ComponentType, data []byte) {
		out = append(out, ns.SlotComponent{ID: ns.VarInt(typ), Data: data})
	}

	if d := s.Durability(); d > 0 {
		var buf bytes.Buffer
		writeVarInt(&buf, int32(d))
		add(ComponentDamage, buf.Bytes())
	}
	if s.Unbreakable() {
		add(ComponentUnbreakable, []byte{})
	}
	if name := s.Name(); name != "" {
		var buf bytes.Buffer
		if err := writeText(&buf, name); err != nil {
			return nil, err
		}
		add(ComponentCustomName, buf.Bytes())
	}
	if lore := s.Lore(); len(lore) > 0 {
		var buf bytes.Buffer
		writeVarInt(&buf, int32(len(lore)))
		for _, line := range lore {
			if err := writeText(&buf, line); err != nil {
				return nil, err
			}
		}
		add(ComponentLore, buf.Bytes())
	}
	if data, ok := enchantments(s.Enchants()); ok {
		add(ComponentEnchantments, data)
	}
	if data, ok := tooltipDisplay(s.Flags()); ok {
		add(ComponentTooltipDisplay, data)
	}
	// TODO: encode SkullTexture as a minecraft:profile component once the
	// resolvable profile layout of the targeted protocol version is pinned.
	return out, nil
}

func enchantments(enchants map[item.Enchantment]int) ([]byte, bool) {
	type entry struct{ id, level int32 }
	var entries []entry
	for e, level := range enchants {
		if id, ok := EnchantmentIDs[e]; ok {
			entries = append(entries, entry{id, int32(level)})
		}
	}
	if len(entries) == 0 {
		return nil, false
	}
	slices.SortFunc(entries, func(a, b entry) int { return int(a.id - b.id) })

	var buf bytes.Buffer
	writeVarInt(&buf, int32(len(entries)))
	for _, e := range entries {
		writeVarInt(&buf, e.id)
		writeVarInt(&buf, e.level)
	}
	return buf.Bytes(), true
}

func tooltipDisplay(flags []item.Flag) ([]byte, bool) {
	var hidden []ComponentType
	for _, f := range flags {
		hidden = append(hidden, hiddenBy[f]...)
	}
	if len(hidden) == 0 {
		return nil, false
	}
	slices.Sort(hidden)
	hidden = slices.Compact(hidden)

	var buf bytes.Buffer
	buf.WriteByte(0) // hide_tooltip
	writeVarInt(&buf, int32(len(hidden)))
	for _, typ := range hidden {
		writeVarInt(&buf, int32(typ))
	}
	return buf.Bytes(), true
}
