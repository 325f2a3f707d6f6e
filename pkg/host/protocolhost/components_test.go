package protocolhost

import (
	"bytes"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeText(t *testing.T, data []byte) textComponent {
	t.Helper()
	d := nbt.NewDecoder(bytes.NewReader(data))
	d.NetworkFormat(true)
	var tc textComponent
	_, err := d.Decode(&tc)
	require.NoError(t, err)
	return tc
}

func TestEncodeNamedGlowingItem(t *testing.T) {
	s := item.New("diamond").SetName("Shop").AddLore("Buy things").SetGlowing(false).Build()
	slot := newSlotEncoder(4).encode(s)

	require.Len(t, slot.Components.Add, 4)
	byType := make(map[ComponentType][]byte)
	var order []ComponentType
	for _, c := range slot.Components.Add {
		byType[ComponentType(c.ID)] = c.Data
		order = append(order, ComponentType(c.ID))
	}
	assert.Equal(t, []ComponentType{ComponentCustomName, ComponentLore, ComponentEnchantments, ComponentTooltipDisplay}, order)

	assert.Equal(t, textComponent{Text: "Shop"}, decodeText(t, byType[ComponentCustomName]))

	lore := byType[ComponentLore]
	require.NotEmpty(t, lore)
	assert.Equal(t, byte(1), lore[0])
	assert.Equal(t, textComponent{Text: "Buy things"}, decodeText(t, lore[1:]))

	assert.Equal(t, []byte{1, byte(EnchantmentIDs[item.Lure]), 1}, byType[ComponentEnchantments])
	assert.Equal(t, []byte{0, 1, byte(ComponentEnchantments)}, byType[ComponentTooltipDisplay])
}

func TestEncodeDamageAndUnbreakable(t *testing.T) {
	s := item.New("diamond_sword").SetDurability(12).SetUnbreakable(true).
		AddFlags(item.FlagHideUnbreakable, item.FlagHideAttributes).Build()
	slot := newSlotEncoder(4).encode(s)

	require.Len(t, slot.Components.Add, 3)
	assert.Equal(t, ComponentDamage, ComponentType(slot.Components.Add[0].ID))
	assert.Equal(t, []byte{12}, []byte(slot.Components.Add[0].Data))
	assert.Equal(t, ComponentUnbreakable, ComponentType(slot.Components.Add[1].ID))
	assert.Empty(t, slot.Components.Add[1].Data)
	assert.Equal(t, ComponentTooltipDisplay, ComponentType(slot.Components.Add[2].ID))
	assert.Equal(t, []byte{0, 2, byte(ComponentUnbreakable), byte(ComponentAttributeModifiers)}, []byte(slot.Components.Add[2].Data))
}

func TestEncodePlainItemHasNoComponents(t *testing.T) {
	slot := newSlotEncoder(4).encode(item.New("stone").SetCount(5).Build())
	assert.Empty(t, slot.Components.Add)
}
