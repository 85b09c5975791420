package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/state/state_config"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/tests"
)

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetOutput(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), strings.Join(args, " "))
	return out.String()
}

func TestCommands(t *testing.T) {
	t.Setenv(state_config.EnvDBType, "leveldb")
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	t.Setenv(state_config.EnvDBPath, tc.DataDir())
	t.Setenv(state_config.EnvLogLevel, "error")
	configPath = ""
	alice, bob := tests.Key(1).Hex(), tests.Key(2).Hex()

	assert.Contains(t, run(t, "keygen", "--seed", "alice"), "public:")
	assert.Equal(t, "ok\n", run(t, "mint", alice, "1000", "--sender", alice, "--height", "0"))
	assert.Equal(t, "failed: Minting is only allowed at the genesis block\n",
		run(t, "mint", alice, "1000", "--sender", alice, "--height", "1"))
	assert.Equal(t, "ok\n", run(t, "transfer", bob, "400", "--sender", alice, "--height", "2"))
	assert.Equal(t, "600\n", run(t, "balance", alice))
	assert.Equal(t, "400\n", run(t, "balance", bob))
	assert.Equal(t, "1000\n", run(t, "balance", alice, "--at", "1"))

	assert.Equal(t, "failed: Maximum rating can be 5\n", run(t, "checkin", "7", "--sender", bob, "--height", "3"))
	assert.Equal(t, "not checked in\n", run(t, "guest", bob))
	assert.Equal(t, "ok\n", run(t, "checkin", "4", "--sender", bob, "--height", "3"))
	assert.Contains(t, run(t, "guest", bob), "rating: 4")

	assert.Contains(t, run(t, "root"), "height: 3")
	assert.Contains(t, run(t, "prove", alice), "valid: true")
	assert.Contains(t, run(t, "prove", tests.Key(3).Hex()), "valid: true")
}
