package protocolhost

import (
	"github.com/go-mclib/menu/pkg/item"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	lru "github.com/hashicorp/golang-lru/v2"
)

const maxContainerID = 100

// slotEncoder turns snapshots into wire slots. Snapshots are immutable, so the
// encoding is cached per snapshot.
type slotEncoder struct {
	cache *lru.Cache[*item.Snapshot, ns.Slot]
}

func newSlotEncoder(size int) *slotEncoder {
	cache, err := lru.New[*item.Snapshot, ns.Slot](size)
	if err != nil {
		// only fails for a non-positive size
		cache, _ = lru.New[*item.Snapshot, ns.Slot](1)
	}
	return &slotEncoder{cache: cache}
}

// encode returns the wire slot for s, with its name, lore, enchantments and
// tooltip flags as data components. Unknown materials and nil snapshots encode
// as an empty slot.
func (e *slotEncoder) encode(s *item.Snapshot) ns.Slot {
	if s == nil {
		return ns.Slot{}
	}
	if slot, ok := e.cache.Get(s); ok {
		return slot
	}
	var slot ns.Slot
	if id := s.ID(); id >= 0 {
		slot = ns.Slot{ItemID: ns.VarInt(id), Count: ns.VarInt(s.Count())}
		if add, err := components(s); err == nil {
			slot.Components.Add = add
		}
	}
	e.cache.Add(s, slot)
	return slot
}

// encodeAll encodes a full window content list.
func (e *slotEncoder) encodeAll(contents []*item.Snapshot) []ns.Slot {
	out := make([]ns.Slot, len(contents))
	for i, s := range contents {
		out[i] = e.encode(s)
	}
	return out
}
