package core

import "encoding/json"

// NullBlock is a sentinel only: it stands in for the synthetic head of an
// empty chain and is never appended or persisted. Grounded on
// blocks.py's NullBlock.
type NullBlock struct {
	Hdr Header
}

func (b *NullBlock) BlockType() BlockType { return BlockTypeNull }
func (b *NullBlock) Header() *Header      { return &b.Hdr }

func (b *NullBlock) Hashable() []string {
	return b.Hdr.hashPrefix(BlockTypeNull)
}

func (b *NullBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Hdr.asMap(BlockTypeNull))
}

func (b *NullBlock) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return b.Hdr.fromMap(m, BlockTypeNull)
}
