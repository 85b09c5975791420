package state_map

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
)

// Path is the storage position of one (module, property) namespace.
type Path struct {
	module, property string
	pos              common.Hash
}

func PathOf(module, property string) Path {
	m, p := keccak256.Hash([]byte(module)), keccak256.Hash([]byte(property))
	return Path{module, property, keccak256.Hash(m[:], p[:])}
}

func (self Path) Module() string   { return self.module }
func (self Path) Property() string { return self.property }
func (self Path) Pos() common.Hash { return self.pos }

func (self Path) Namespace() string { return self.module + "." + self.property }

// At is the slot of an encoded key inside the namespace.
func (self Path) At(enc_key []byte) common.Hash {
	return keccak256.Hash(self.pos[:], enc_key)
}
