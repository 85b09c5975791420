package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/codec"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/execution"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/keccak256"
)

func parseAmount(s string) (*big.Int, error) {
	ret, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("not a number: %q", s)
	}
	return ret, nil
}

func printResult(w io.Writer, res execution.Result) {
	if res.Success {
		fmt.Fprintln(w, "ok")
	} else {
		fmt.Fprintf(w, "failed: %s\n", res.Message)
	}
}

func newKeygenCommand() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var priv *btcec.PrivateKey
			if seed != "" {
				h := keccak256.Hash([]byte(seed))
				priv, _ = btcec.PrivKeyFromBytes(btcec.S256(), h[:])
			} else {
				var err error
				if priv, err = btcec.NewPrivateKey(btcec.S256()); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "private:", hexutil.Encode(priv.Serialize()))
			fmt.Fprintln(out, "public: ", hexutil.Encode(priv.PubKey().SerializeCompressed()))
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "derive the key from a seed phrase")
	return cmd
}

type invocationFlags struct {
	sender string
	height uint64
}

func (self *invocationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&self.sender, "sender", "", "public key of the invoking account (hex)")
	cmd.Flags().Uint64Var(&self.height, "height", 0, "block height of the invocation")
	cmd.MarkFlagRequired("sender")
}

func (self *invocationFlags) metadata() (execution.Metadata, error) {
	sender, err := codec.PublicKeyFromHex(self.sender)
	if err != nil {
		return execution.Metadata{}, errors.Wrap(err, "sender")
	}
	return execution.Metadata{Sender: sender, BlockHeight: self.height}, nil
}

func invoke(cmd *cobra.Command, flags *invocationFlags, method func(*app, *execution.Context) error) error {
	meta, err := flags.metadata()
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		res, err := a.exec.Execute(meta, func(ctx *execution.Context) error { return method(a, ctx) })
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	})
}

func newMintCommand() *cobra.Command {
	var flags invocationFlags
	cmd := &cobra.Command{
		Use:   "mint <to> <amount>",
		Short: "Mint tokens, allowed at the genesis block only",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := codec.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return invoke(cmd, &flags, func(a *app, ctx *execution.Context) error {
				return a.Mintery.Mint(ctx, to, amount)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTransferCommand() *cobra.Command {
	var flags invocationFlags
	cmd := &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer tokens from the sender",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := codec.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return invoke(cmd, &flags, func(a *app, ctx *execution.Context) error {
				return a.Balances.Transfer(ctx, to, amount)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newCheckInCommand() *cobra.Command {
	var flags invocationFlags
	cmd := &cobra.Command{
		Use:   "checkin <rating>",
		Short: "Check the sender into the guest book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return invoke(cmd, &flags, func(a *app, ctx *execution.Context) error {
				return a.GuestBook.CheckIn(ctx, rating)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newBalanceCommand() *cobra.Command {
	var at int64
	cmd := &cobra.Command{
		Use:   "balance <account>",
		Short: "Print a committed balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := codec.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				var v *big.Int
				var exists bool
				if at < 0 {
					v, exists, err = a.Balances.GetCommittedBalance(a.store, addr)
				} else {
					v, exists, err = a.Balances.Map().GetAt(a.store, uint64(at), addr)
				}
				if err != nil {
					return err
				}
				if !exists {
					v = new(big.Int)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&at, "at", -1, "read the balance as of this block height")
	return cmd
}

func newGuestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guest <account>",
		Short: "Print the guest book entry of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guest, err := codec.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				v, exists, err := a.GuestBook.GetCommitted(a.store, guest)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !exists {
					fmt.Fprintln(out, "not checked in")
					return nil
				}
				fmt.Fprintf(out, "guest: %s\ncreated at: %s\nrating: %s\n", v.Guest, v.CreatedAt, v.Rating)
				return nil
			})
		},
	}
}

func newRootCommand() *cobra.Command {
	var at int64
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Print the state root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				desc := a.store.GetCommittedDescriptor()
				if at >= 0 {
					root, err := a.store.GetRootAt(uint64(at))
					if err != nil {
						return err
					}
					desc.BlockNum, desc.StateRoot = uint64(at), root
				}
				fmt.Fprintf(cmd.OutOrStdout(), "height: %d\nroot: %s\n", desc.BlockNum, desc.StateRoot.Hex())
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&at, "at", -1, "block height")
	return cmd
}

func newProveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prove <account>",
		Short: "Print and check a proof of an account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := codec.PublicKeyFromHex(args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				balances := a.Balances.Map()
				proof, err := balances.Prove(a.store, addr)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				spew.Fdump(out, proof)
				v, exists, err := balances.GetCommitted(a.store, addr)
				if err != nil {
					return err
				}
				var ok bool
				if exists {
					ok, err = balances.Verify(&proof, &v)
				} else {
					ok, err = balances.Verify(&proof, nil)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "valid:", ok)
				return nil
			})
		},
	}
}
