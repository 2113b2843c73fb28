package core

import "encoding/json"

// Reset and Upgrade carry no payload beyond the common header; they mark
// chain-lifecycle events (a wipe or a format migration) without moving
// value. Grounded on blocks.py's Reset/Upgrade, which likewise add nothing
// to Block.

type Reset struct {
	Hdr Header
}

func (b *Reset) BlockType() BlockType { return BlockTypeReset }
func (b *Reset) Header() *Header      { return &b.Hdr }
func (b *Reset) Hashable() []string   { return b.Hdr.hashPrefix(BlockTypeReset) }

func (b *Reset) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hdr.asMap(BlockTypeReset))
}

func (b *Reset) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return b.Hdr.fromMap(m, BlockTypeReset)
}

type Upgrade struct {
	Hdr Header
}

func (b *Upgrade) BlockType() BlockType { return BlockTypeUpgrade }
func (b *Upgrade) Header() *Header      { return &b.Hdr }
func (b *Upgrade) Hashable() []string   { return b.Hdr.hashPrefix(BlockTypeUpgrade) }

func (b *Upgrade) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hdr.asMap(BlockTypeUpgrade))
}

func (b *Upgrade) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return b.Hdr.fromMap(m, BlockTypeUpgrade)
}
