package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	defer func() {
		SetOutput(os.Stderr)
		require.NoError(t, Configure(Config{Level: "info", Format: "text"}))
	}()

	require.NoError(t, Configure(Config{Level: "warn", Format: "json"}))
	assert.Equal(t, logrus.WarnLevel, Level())

	Module("state_db").Info("dropped")
	assert.Zero(t, out.Len())

	Module("state_db").WithField("height", 3).Warn("kept")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "state_db", entry["module"])
	assert.Equal(t, "kept", entry["msg"])
	assert.EqualValues(t, 3, entry["height"])

	assert.Error(t, Configure(Config{Level: "loud"}))
	assert.Equal(t, logrus.WarnLevel, Level())
}
