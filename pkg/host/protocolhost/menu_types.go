package protocolhost

import "github.com/go-mclib/menu/pkg/menu"

// MenuType is an entry of the minecraft:menu registry, sent in the open screen
// packet to pick the client-side layout.
type MenuType int32

const (
	MenuGeneric9x1   MenuType = 0
	MenuGeneric9x2   MenuType = 1
	MenuGeneric9x3   MenuType = 2 // single chest, barrel
	MenuGeneric9x4   MenuType = 3
	MenuGeneric9x5   MenuType = 4
	MenuGeneric9x6   MenuType = 5 // double chest
	MenuGeneric3x3   MenuType = 6 // dispenser, dropper
	MenuAnvil        MenuType = 8
	MenuBeacon       MenuType = 9
	MenuBrewingStand MenuType = 11
	MenuCrafting     MenuType = 12
	MenuEnchantment  MenuType = 13
	MenuFurnace      MenuType = 14
	MenuHopper       MenuType = 16
	MenuShulkerBox   MenuType = 20
)

// menuTypeFor maps a menu kind to the registry entry the client renders.
func menuTypeFor(kind menu.Kind, size int) MenuType {
	switch kind {
	case menu.Chest:
		rows := max(1, min(size/menu.RowWidth, menu.MaxRows))
		return MenuGeneric9x1 + MenuType(rows-1)
	case menu.Dispenser, menu.Dropper:
		return MenuGeneric3x3
	case menu.Hopper:
		return MenuHopper
	case menu.Furnace:
		return MenuFurnace
	case menu.Workbench:
		return MenuCrafting
	case menu.Anvil:
		return MenuAnvil
	case menu.Beacon:
		return MenuBeacon
	case menu.Brewing:
		return MenuBrewingStand
	case menu.Enchanting:
		return MenuEnchantment
	case menu.ShulkerBox:
		return MenuShulkerBox
	default:
		return MenuGeneric9x3
	}
}
