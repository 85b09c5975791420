//go:build rocksdb

package rocksdb

import (
	"github.com/tecbot/gorocksdb"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/db"
)

type Factory struct {
	File                string `yaml:"file"`
	ReadOnly            bool   `yaml:"read_only"`
	ErrorIfExists       bool   `yaml:"error_if_exists"`
	DontCreateIfMissing bool   `yaml:"dont_create_if_missing"`
	MaxOpenFiles        int    `yaml:"max_open_files"`
	BloomFilterBits     int    `yaml:"bloom_filter_bits"`
	BlockCacheSize      uint64 `yaml:"block_cache_size"`
	WriteBufferSize     int    `yaml:"write_buffer_size"`
	Parallelism         int    `yaml:"parallelism"`
	UseDirectReads      bool   `yaml:"use_direct_reads"`
}

func (self *Factory) NewInstance() (db.Database, error) {
	opts := gorocksdb.NewDefaultOptions()
	block_opts := gorocksdb.NewDefaultBlockBasedTableOptions()
	bloom_bits := self.BloomFilterBits
	if bloom_bits <= 0 {
		bloom_bits = 10
	}
	block_opts.SetFilterPolicy(gorocksdb.NewBloomFilter(bloom_bits))
	if self.BlockCacheSize > 0 {
		block_opts.SetBlockCache(gorocksdb.NewLRUCache(self.BlockCacheSize))
	}
	opts.SetBlockBasedTableFactory(block_opts)
	if self.WriteBufferSize > 0 {
		opts.SetWriteBufferSize(self.WriteBufferSize)
	}
	if self.MaxOpenFiles > 0 {
		opts.SetMaxOpenFiles(self.MaxOpenFiles)
	}
	if self.Parallelism > 0 {
		opts.IncreaseParallelism(self.Parallelism)
	}
	opts.SetUseDirectReads(self.UseDirectReads)
	opts.SetErrorIfExists(self.ErrorIfExists)
	opts.SetCreateIfMissing(!self.DontCreateIfMissing)
	ret := &Database{
		readOpts:  gorocksdb.NewDefaultReadOptions(),
		writeOpts: gorocksdb.NewDefaultWriteOptions(),
	}
	var err error
	if self.ReadOnly {
		ret.db, err = gorocksdb.OpenDbForReadOnly(opts, self.File, self.ErrorIfExists)
	} else {
		ret.db, err = gorocksdb.OpenDb(opts, self.File)
	}
	if err != nil {
		ret.readOpts.Destroy()
		ret.writeOpts.Destroy()
		return nil, err
	}
	return ret, nil
}

func (self *Factory) SetPath(path string) { self.File = path }
