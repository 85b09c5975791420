package mintery

import (
	"math/big"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/runtime/modules/balances"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
)

const Name = "mintery"

const MsgNotGenesis = "Minting is only allowed at the genesis block"

var Deps = []string{balances.Name}

type Mintery struct {
	Balances *balances.Balances
}

func Factory(deps runtime.Deps) (runtime.Module, error) {
	b, err := runtime.Dep[*balances.Balances](deps, balances.Name)
	if err != nil {
		return nil, err
	}
	return &Mintery{b}, nil
}

func (self *Mintery) Descriptor() runtime.Descriptor { return runtime.Descriptor{} }

func (self *Mintery) Mint(ctx *execution.Context, to codec.PublicKey, amount *big.Int) error {
	if !ctx.Assert(ctx.BlockHeight() == 0, MsgNotGenesis) {
		return nil
	}
	return self.Balances.AddBalance(ctx, to, amount)
}
