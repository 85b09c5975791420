package guest_book

import (
	"fmt"
	"math/big"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_map"
)

const Name = "guest_book"

type CheckIn struct {
	Guest     codec.PublicKey
	CreatedAt *big.Int
	Rating    *big.Int
}

var CheckInCodec = codec.NewStruct("CheckIn",
	codec.FieldOf("guest", codec.PublicKeyCodec, func(v *CheckIn) *codec.PublicKey { return &v.Guest }),
	codec.FieldOf("createdAt", codec.Codec[*big.Int](codec.UInt64), func(v *CheckIn) **big.Int { return &v.CreatedAt }),
	codec.FieldOf("rating", codec.Codec[*big.Int](codec.UInt32), func(v *CheckIn) **big.Int { return &v.Rating }),
)

type Config struct {
	MaxRating uint64 `yaml:"max_rating"`
}

var DefaultConfig = Config{MaxRating: 5}

type GuestBook struct {
	config   Config
	checkIns *state_map.StateMap[codec.PublicKey, CheckIn]
}

func New(config Config) *GuestBook {
	return &GuestBook{
		config:   config,
		checkIns: state_map.From[codec.PublicKey, CheckIn](Name, "guestBook", codec.PublicKeyCodec, CheckInCodec),
	}
}

func FactoryWith(config Config) runtime.Factory {
	return func(runtime.Deps) (runtime.Module, error) { return New(config), nil }
}

func (self *GuestBook) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{State: []state_map.Path{self.checkIns.Path()}}
}

func (self *GuestBook) Config() Config { return self.config }

// CheckIn records a visit of the sender at the current block height.
// A rating that is not a UInt32 is a codec error.
func (self *GuestBook) CheckIn(ctx *execution.Context, rating *big.Int) error {
	if _, err := codec.UInt32.Encode(rating); err != nil {
		return err
	}
	max := new(big.Int).SetUint64(self.config.MaxRating)
	if !ctx.Assert(rating.Cmp(max) <= 0, fmt.Sprintf("Maximum rating can be %d", self.config.MaxRating)) {
		return nil
	}
	guest := ctx.Sender()
	return self.checkIns.Set(ctx, guest, CheckIn{
		Guest:     guest,
		CreatedAt: new(big.Int).SetUint64(ctx.BlockHeight()),
		Rating:    rating,
	})
}

func (self *GuestBook) Get(ctx *execution.Context, guest codec.PublicKey) (CheckIn, bool, error) {
	return self.checkIns.Get(ctx, guest)
}

func (self *GuestBook) GetCommitted(r state_map.CommittedReader, guest codec.PublicKey) (CheckIn, bool, error) {
	return self.checkIns.GetCommitted(r, guest)
}

func (self *GuestBook) Map() *state_map.StateMap[codec.PublicKey, CheckIn] { return self.checkIns }
