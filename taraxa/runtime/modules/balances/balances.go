package balances

import (
	"math/big"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_map"
)

const Name = "balances"

const MsgInsufficientBalance = "Insufficient balance"

type Balances struct {
	balances *state_map.StateMap[codec.PublicKey, *big.Int]
}

func New() *Balances {
	return &Balances{
		balances: state_map.From(Name, "balances", codec.PublicKeyCodec, codec.Codec[*big.Int](codec.UInt64)),
	}
}

func Factory(runtime.Deps) (runtime.Module, error) { return New(), nil }

func (self *Balances) Descriptor() runtime.Descriptor {
	return runtime.Descriptor{State: []state_map.Path{self.balances.Path()}}
}

func (self *Balances) Map() *state_map.StateMap[codec.PublicKey, *big.Int] { return self.balances }

// GetBalance is zero for accounts without a balance slot.
func (self *Balances) GetBalance(ctx *execution.Context, addr codec.PublicKey) (*big.Int, error) {
	v, exists, err := self.balances.Get(ctx, addr)
	if err != nil || !exists {
		return new(big.Int), err
	}
	return v, nil
}

func (self *Balances) GetCommittedBalance(r state_map.CommittedReader, addr codec.PublicKey) (*big.Int, bool, error) {
	return self.balances.GetCommitted(r, addr)
}

func (self *Balances) SetBalance(ctx *execution.Context, addr codec.PublicKey, amount *big.Int) error {
	return self.balances.Set(ctx, addr, amount)
}

// AddBalance fails with a codec error if the result exceeds 64 bits.
func (self *Balances) AddBalance(ctx *execution.Context, addr codec.PublicKey, amount *big.Int) error {
	current, err := self.GetBalance(ctx, addr)
	if err != nil {
		return err
	}
	return self.balances.Set(ctx, addr, new(big.Int).Add(current, amount))
}

// Transfer moves amount from the sender of ctx to to. The context is
// aborted if the sender cannot cover it. A codec error leaves nothing
// staged.
func (self *Balances) Transfer(ctx *execution.Context, to codec.PublicKey, amount *big.Int) error {
	if _, err := codec.UInt64.Encode(amount); err != nil {
		return err
	}
	from := ctx.Sender()
	balance, err := self.GetBalance(ctx, from)
	if err != nil {
		return err
	}
	if !ctx.Assert(balance.Cmp(amount) >= 0, MsgInsufficientBalance) {
		return nil
	}
	debited := new(big.Int).Sub(balance, amount)
	credited := new(big.Int).Add(debited, amount)
	if to != from {
		current, err := self.GetBalance(ctx, to)
		if err != nil {
			return err
		}
		credited.Add(current, amount)
	}
	if _, err := codec.UInt64.Encode(credited); err != nil {
		return err
	}
	if err := self.balances.Set(ctx, from, debited); err != nil {
		return err
	}
	return self.balances.Set(ctx, to, credited)
}
