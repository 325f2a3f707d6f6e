package item

import "strings"

// Enchantment is a namespaced enchantment identifier from the minecraft:enchantment
// registry (e.g. "minecraft:sharpness").
type Enchantment string

const (
	Protection           Enchantment = "minecraft:protection"
	FireProtection       Enchantment = "minecraft:fire_protection"
	FeatherFalling       Enchantment = "minecraft:feather_falling"
	BlastProtection      Enchantment = "minecraft:blast_protection"
	ProjectileProtection Enchantment = "minecraft:projectile_protection"
	Respiration          Enchantment = "minecraft:respiration"
	AquaAffinity         Enchantment = "minecraft:aqua_affinity"
	Thorns               Enchantment = "minecraft:thorns"
	DepthStrider         Enchantment = "minecraft:depth_strider"
	Sharpness            Enchantment = "minecraft:sharpness"
	Smite                Enchantment = "minecraft:smite"
	BaneOfArthropods     Enchantment = "minecraft:bane_of_arthropods"
	Knockback            Enchantment = "minecraft:knockback"
	FireAspect           Enchantment = "minecraft:fire_aspect"
	Looting              Enchantment = "minecraft:looting"
	Efficiency           Enchantment = "minecraft:efficiency"
	SilkTouch            Enchantment = "minecraft:silk_touch"
	Unbreaking           Enchantment = "minecraft:unbreaking"
	Fortune              Enchantment = "minecraft:fortune"
	Power                Enchantment = "minecraft:power"
	Punch                Enchantment = "minecraft:punch"
	Flame                Enchantment = "minecraft:flame"
	Infinity             Enchantment = "minecraft:infinity"
	LuckOfTheSea         Enchantment = "minecraft:luck_of_the_sea"
	Lure                 Enchantment = "minecraft:lure"
	Mending              Enchantment = "minecraft:mending"
)

// GlowEnchantment is reserved for the glow effect (see Builder.SetGlowing).
// Lure only affects fishing rods, so on any menu icon it changes nothing but the
// enchantment shimmer, and FlagHideEnchants keeps it out of the tooltip.
// Callers should not use it for anything else on menu items.
const GlowEnchantment = Lure

// Key returns the path part of the identifier ("sharpness" for "minecraft:sharpness").
func (e Enchantment) Key() string {
	if _, path, ok := strings.Cut(string(e), ":"); ok {
		return path
	}
	return string(e)
}

func (e Enchantment) String() string { return string(e) }
