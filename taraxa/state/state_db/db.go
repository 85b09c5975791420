package state_db

import (
	"sync"
	"time"

	"github.com/allegro/bigcache"
	"github.com/coocood/freecache"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/trie"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/logging"
)

var ErrHeightRegression = util.ErrorString("block height is lower than the last committed one")
var ErrFutureBlock = util.ErrorString("block height is not committed yet")

// Write is one slot update. A nil Value deletes the slot.
type Write struct {
	Key   common.Hash
	Value []byte
}

type Opts struct {
	NodeCacheEntries int `yaml:"node_cache_entries"`
	// freecache needs at least 512KB
	LatestCacheBytes int `yaml:"latest_cache_bytes"`
	// lifetime of content addressed values in the historical read cache
	BlobCacheLifetime time.Duration `yaml:"blob_cache_lifetime"`
}

var DefaultOpts = Opts{
	NodeCacheEntries:  1 << 16,
	LatestCacheBytes:  32 << 20,
	BlobCacheLifetime: 10 * time.Minute,
}

// DB is the committed state. Reads observe the last successful commit.
type DB struct {
	backend      db.Database
	mu           sync.RWMutex
	desc         StateDescriptor
	node_cache   *lru.Cache
	latest_cache *freecache.Cache
	blob_cache   *bigcache.BigCache
	log          *logrus.Entry
}

func (self *DB) Init(backend db.Database, opts Opts) (*DB, error) {
	if opts.NodeCacheEntries <= 0 {
		opts.NodeCacheEntries = DefaultOpts.NodeCacheEntries
	}
	if opts.LatestCacheBytes <= 0 {
		opts.LatestCacheBytes = DefaultOpts.LatestCacheBytes
	}
	if opts.BlobCacheLifetime <= 0 {
		opts.BlobCacheLifetime = DefaultOpts.BlobCacheLifetime
	}
	self.backend = backend
	self.log = logging.Module("state_db")
	var err error
	if self.node_cache, err = lru.New(opts.NodeCacheEntries); err != nil {
		return nil, err
	}
	self.latest_cache = freecache.NewCache(opts.LatestCacheBytes)
	blob_cfg := bigcache.DefaultConfig(opts.BlobCacheLifetime)
	blob_cfg.Shards = 64
	blob_cfg.Verbose = false
	if self.blob_cache, err = bigcache.NewBigCache(blob_cfg); err != nil {
		return nil, err
	}
	enc, err := backend.Get(db_key(COL_meta, meta_descriptor))
	if err != nil {
		return nil, errors.Wrap(err, "read state descriptor")
	}
	if enc != nil {
		if self.desc, err = decode_descriptor(enc); err != nil {
			return nil, errors.Wrap(err, "decode state descriptor")
		}
	}
	self.log.WithFields(logrus.Fields{
		"height": self.desc.BlockNum,
		"root":   self.desc.StateRoot.Hex(),
	}).Info("state opened")
	return self, nil
}

func (self *DB) Close() error {
	defer util.LockUnlock(&self.mu)()
	self.blob_cache.Reset()
	self.latest_cache.Clear()
	self.node_cache.Purge()
	return self.backend.Close()
}

func (self *DB) GetCommittedDescriptor() StateDescriptor {
	defer util.RLockRUnlock(&self.mu)()
	return self.desc
}

// Get returns the committed value of a slot, nil if there is none.
func (self *DB) Get(key *common.Hash) ([]byte, error) {
	defer util.RLockRUnlock(&self.mu)()
	if v, err := self.latest_cache.Get(key[:]); err == nil {
		return v, nil
	}
	v, err := self.backend.Get(hash_key(COL_latest, key))
	if err != nil {
		return nil, errors.Wrap(err, "read slot")
	}
	if v != nil {
		// entries above the freecache size limit are simply not cached
		self.latest_cache.Set(key[:], v, 0)
	}
	return v, nil
}

// Commit merges writes into the state at the given height. Either all of
// them become visible or, on error, none.
func (self *DB) Commit(height uint64, writes []Write) (StateDescriptor, error) {
	defer util.LockUnlock(&self.mu)()
	if height < self.desc.BlockNum {
		return self.desc, ErrHeightRegression
	}
	var w trie.Writer
	w.Init(node_reader{self}, &self.desc.StateRoot)
	batch := self.backend.NewBatch()
	for i := range writes {
		wr := &writes[i]
		if wr.Value == nil {
			if err := w.Delete(&wr.Key); err != nil {
				return self.desc, err
			}
			if err := batch.Delete(hash_key(COL_latest, &wr.Key)); err != nil {
				return self.desc, err
			}
			continue
		}
		val_hash := keccak256.Hash(wr.Value)
		if err := w.Put(&wr.Key, &val_hash); err != nil {
			return self.desc, err
		}
		if err := batch.Put(hash_key(COL_value, &val_hash), wr.Value); err != nil {
			return self.desc, err
		}
		if err := batch.Put(hash_key(COL_latest, &wr.Key), wr.Value); err != nil {
			return self.desc, err
		}
	}
	sink := node_sink{node_reader{self}, batch, nil}
	root, err := w.Commit(&sink)
	if err != nil {
		return self.desc, err
	}
	desc := StateDescriptor{BlockNum: height, StateRoot: root}
	if err := batch.Put(db_key(COL_meta, meta_descriptor), desc.encode()); err != nil {
		return self.desc, err
	}
	if err := batch.Put(root_key(height), root[:]); err != nil {
		return self.desc, err
	}
	if err := batch.Write(); err != nil {
		return self.desc, errors.Wrap(err, "state commit")
	}
	self.desc = desc
	for i := range writes {
		wr := &writes[i]
		if wr.Value == nil {
			self.latest_cache.Del(wr.Key[:])
		} else {
			self.latest_cache.Set(wr.Key[:], wr.Value, 0)
		}
	}
	for _, n := range sink.nodes {
		self.node_cache.Add(n.hash, n.enc)
	}
	self.log.WithFields(logrus.Fields{
		"height": height,
		"writes": len(writes),
		"root":   root.Hex(),
	}).Debug("state committed")
	return desc, nil
}

// GetRootAt returns the root the state had after the last commit at or
// below height.
func (self *DB) GetRootAt(height uint64) (common.Hash, error) {
	desc := self.GetCommittedDescriptor()
	if height >= desc.BlockNum {
		if height > desc.BlockNum {
			return common.Hash{}, errors.Wrapf(ErrFutureBlock, "requested %d, last committed %d", height, desc.BlockNum)
		}
		return desc.StateRoot, nil
	}
	for h := height; ; h-- {
		enc, err := self.backend.Get(root_key(h))
		if err != nil {
			return common.Hash{}, errors.Wrap(err, "read state root")
		}
		if enc != nil {
			return common.BytesToHash(enc), nil
		}
		if h == 0 {
			return trie.EmptyRoot, nil
		}
	}
}

// GetAt reads a slot as of the given height.
func (self *DB) GetAt(height uint64, key *common.Hash) ([]byte, error) {
	root, err := self.GetRootAt(height)
	if err != nil {
		return nil, err
	}
	val_hash, err := trie.Reader{DB: node_reader{self}}.Get(&root, key)
	if err != nil || val_hash == nil {
		return nil, err
	}
	return self.get_blob(val_hash)
}

func (self *DB) get_blob(val_hash *common.Hash) ([]byte, error) {
	cache_key := string(val_hash[:])
	if v, err := self.blob_cache.Get(cache_key); err == nil {
		return v, nil
	}
	v, err := self.backend.Get(hash_key(COL_value, val_hash))
	if err != nil {
		return nil, errors.Wrap(err, "read value")
	}
	if v == nil {
		return nil, errors.Wrapf(trie.ErrMissingNode, "value %s", val_hash.Hex())
	}
	self.blob_cache.Set(cache_key, v)
	return v, nil
}

// Prove builds a proof for key against the last committed root.
func (self *DB) Prove(key *common.Hash) (trie.Proof, StateDescriptor, error) {
	defer util.RLockRUnlock(&self.mu)()
	proof, err := trie.Reader{DB: node_reader{self}}.Prove(&self.desc.StateRoot, key)
	return proof, self.desc, err
}

func (self *DB) ProveAt(height uint64, key *common.Hash) (trie.Proof, common.Hash, error) {
	root, err := self.GetRootAt(height)
	if err != nil {
		return trie.Proof{}, root, err
	}
	proof, err := trie.Reader{DB: node_reader{self}}.Prove(&root, key)
	return proof, root, err
}

// ForEach visits every committed slot.
func (self *DB) ForEach(cb func(key *common.Hash, value []byte) error) error {
	defer util.RLockRUnlock(&self.mu)()
	return trie.Reader{DB: node_reader{self}}.ForEach(&self.desc.StateRoot, func(key, val_hash *common.Hash) error {
		v, err := self.get_blob(val_hash)
		if err != nil {
			return err
		}
		return cb(key, v)
	})
}
