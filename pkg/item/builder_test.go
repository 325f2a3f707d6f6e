package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoundTrip(t *testing.T) {
	b := New("minecraft:diamond").SetName("X").SetLore("a", "b").SetCount(3)

	s := b.Build()
	assert.Equal(t, "X", s.Name())
	assert.Equal(t, []string{"a", "b"}, s.Lore())
	assert.Equal(t, 3, s.Count())

	again := b.Build()
	assert.True(t, s.Equal(again), "consecutive builds should match")
	assert.NotSame(t, s, again)
}

func TestNewDefaults(t *testing.T) {
	b := New("stone")

	assert.Equal(t, "minecraft:stone", b.Material())
	assert.Equal(t, 1, b.Count())
	assert.NotNil(t, b.Lore())
	assert.Empty(t, b.Lore())
	assert.NotNil(t, b.Enchants())
	assert.Empty(t, b.Enchants())

	s := b.Build()
	assert.NotNil(t, s.Lore())
	assert.NotNil(t, s.Enchants())
}

func TestItemID(t *testing.T) {
	assert.GreaterOrEqual(t, New("minecraft:diamond").Build().ID(), int32(0))
	assert.Equal(t, int32(-1), New("minecraft:not_an_item").Build().ID())
}

func TestSetCountIgnoresNonPositive(t *testing.T) {
	b := New("stone").SetCount(5)
	b.SetCount(0).SetCount(-2)
	assert.Equal(t, 5, b.Count())
	assert.Equal(t, 7, b.Amount(7).Count())
}

func TestLore(t *testing.T) {
	b := New("paper")

	// append on a fresh builder must not need a prior SetLore
	b.AddLore("first")
	assert.Equal(t, []string{"first"}, b.Lore())

	b.AddLore("second", "third")
	assert.Equal(t, []string{"first", "second", "third"}, b.Lore())

	lines := []string{"x", "y"}
	b.SetLore(lines...)
	lines[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, b.Lore(), "SetLore must copy its input")

	b.ResetLore()
	assert.NotNil(t, b.Lore())
	assert.Empty(t, b.Lore())
	b.AddLore("after reset")
	assert.Equal(t, []string{"after reset"}, b.Lore())
}

func TestEnchants(t *testing.T) {
	b := New("diamond_sword").
		SetEnchant(Sharpness, 5).
		SetEnchant(Sharpness, 10).
		Enchant(Unbreaking, 3)

	assert.Equal(t, map[Enchantment]int{Sharpness: 10, Unbreaking: 3}, b.Enchants())

	b.RemoveEnchant(Looting)
	assert.Len(t, b.Enchants(), 2)

	b.RemoveEnchant(Sharpness)
	assert.Equal(t, map[Enchantment]int{Unbreaking: 3}, b.Enchants())

	b.ResetEnchants()
	assert.Empty(t, b.Enchants())
	assert.NotNil(t, b.Enchants())
}

func TestFlags(t *testing.T) {
	b := New("stone").
		AddFlags(FlagHideAttributes, FlagHideEnchants).
		AddFlags(FlagHideEnchants)

	assert.Equal(t, []Flag{FlagHideEnchants, FlagHideAttributes}, b.Flags())

	b.RemoveFlags(FlagHideEnchants, FlagHideDye)
	assert.Equal(t, []Flag{FlagHideAttributes}, b.Flags())
	assert.Equal(t, "HIDE_ATTRIBUTES", FlagHideAttributes.String())
	assert.Equal(t, "HIDE_ENCHANTS|HIDE_DYE", (FlagHideEnchants | FlagHideDye).String())
}

func TestDurabilityAndUnbreakable(t *testing.T) {
	s := New("iron_pickaxe").SetDurability(-1).SetUnbreakable(true).Build()
	assert.Equal(t, int16(-1), s.Durability())
	assert.True(t, s.Unbreakable())

	s = New("iron_pickaxe").Durability(120).Build()
	assert.Equal(t, int16(120), s.Durability())
	assert.False(t, s.Unbreakable())
}

func TestSkullTexture(t *testing.T) {
	value := EncodeSkinURL("http://textures.minecraft.net/texture/abc")

	head := New(PlayerHead).SetSkullTexture(value).Build()
	assert.Equal(t, value, head.SkullTexture())

	stone := New("stone").SetSkullTexture(value).Build()
	assert.Empty(t, stone.SkullTexture())
}

func TestDecodeSkinURL(t *testing.T) {
	url, err := DecodeSkinURL(EncodeSkinURL("http://textures.minecraft.net/texture/abc"))
	require.NoError(t, err)
	assert.Equal(t, "http://textures.minecraft.net/texture/abc", url)

	_, err = DecodeSkinURL("!!!")
	assert.Error(t, err)

	_, err = DecodeSkinURL("e30=") // {}
	assert.ErrorIs(t, err, ErrNoSkin)
}

func TestGlowing(t *testing.T) {
	b := New("nether_star").SetGlowing(false)
	assert.Equal(t, map[Enchantment]int{GlowEnchantment: 1}, b.Enchants())
	assert.Equal(t, []Flag{FlagHideEnchants}, b.Flags())
	assert.True(t, b.Glowing())

	b.SetGlowing(true)
	assert.Empty(t, b.Enchants())
	assert.Empty(t, b.Flags())
	assert.False(t, b.Glowing())
}

func TestGlowToggleRoundTrip(t *testing.T) {
	once := New("nether_star").SetGlowing(true).Build()
	toggled := New("nether_star").SetGlowing(true).SetGlowing(false).SetGlowing(true).Build()

	assert.True(t, once.Equal(toggled))
	assert.Equal(t, once.Glowing(), toggled.Glowing())
	assert.Empty(t, toggled.Enchants())
}

func TestGlowKeepsOtherEnchants(t *testing.T) {
	b := New("bow").SetEnchant(Power, 2).SetGlowing(false).SetGlowing(true)
	assert.Equal(t, map[Enchantment]int{Power: 2}, b.Enchants())
	assert.True(t, b.Glowing())
}

func TestSnapshotImmutable(t *testing.T) {
	b := New("book").SetLore("a").SetEnchant(Mending, 1)
	s := b.Build()

	b.AddLore("b").SetEnchant(Mending, 2).SetName("changed")
	assert.Equal(t, []string{"a"}, s.Lore())
	lvl, ok := s.Enchant(Mending)
	assert.True(t, ok)
	assert.Equal(t, 1, lvl)
	assert.Empty(t, s.Name())

	lore := s.Lore()
	lore[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Lore())

	enchants := s.Enchants()
	enchants[Sharpness] = 9
	_, ok = s.Enchant(Sharpness)
	assert.False(t, ok)
}

func TestFrom(t *testing.T) {
	base := New("diamond").SetName("Gem").SetLore("shiny").Build()

	b := From(base).AddLore("copy")
	assert.Equal(t, []string{"shiny", "copy"}, b.Lore())
	assert.Equal(t, []string{"shiny"}, base.Lore())
	assert.Equal(t, "Gem", b.Name())
}

func TestEnchantmentKey(t *testing.T) {
	assert.Equal(t, "sharpness", Sharpness.Key())
	assert.Equal(t, "custom", Enchantment("custom").Key())
}
