package keccak256

import (
	"hash"
	"runtime"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

type Hasher struct {
	state hash_state
}
type hash_state interface {
	hash.Hash
	Read([]byte) (int, error)
}

func (self *Hasher) Write(b ...byte) {
	self.state.Write(b)
}

func (self *Hasher) Sum() (ret common.Hash) {
	self.state.Read(ret[:])
	return
}

func (self *Hasher) Reset() {
	self.state.Reset()
}

var hashers chan *Hasher
var hashers_once sync.Once

func init_pool(size int) {
	hashers = make(chan *Hasher, size)
	for i := 0; i < size; i++ {
		hashers <- &Hasher{sha3.NewLegacyKeccak256().(hash_state)}
	}
}

func GetHasherFromPool() *Hasher {
	hashers_once.Do(func() { init_pool(runtime.NumCPU() * 16) })
	return <-hashers
}

func ReturnHasherToPool(hasher *Hasher) {
	hasher.Reset()
	hashers <- hasher
}

func Hash(bs ...[]byte) (ret common.Hash) {
	hasher := GetHasherFromPool()
	for _, b := range bs {
		hasher.Write(b...)
	}
	ret = hasher.Sum()
	ReturnHasherToPool(hasher)
	return
}
