//go:build !masking_hardened

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lattigo-masking/cmd/maskassess/config"
	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/masking/leakage"
)

func writeConfig(t *testing.T, body string) (f string) {
	f = filepath.Join(t.TempDir(), "maskassess.toml")
	require.NoError(t, os.WriteFile(f, []byte(body), 0600))
	return
}

func TestAssess(t *testing.T) {

	dir := t.TempDir()

	cfg, err := config.Load([]byte(`
[Parameters]
  Preset = "KyberOrder2"

[Assessment]
  Trials = 4096
  Seed = "maskassess test"
  ReportDir = "` + dir + `"

[Logging]
  Disable = true
`))
	require.NoError(t, err)

	report, err := assess(cfg)
	require.NoError(t, err)
	require.True(t, report.Pass(), report.Failed())

	data, err := os.ReadFile(filepath.Join(dir, reportFile))
	require.NoError(t, err)

	var decoded leakage.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, masking.KyberOrder2, decoded.Parameters)
	require.Equal(t, len(report.Results), len(decoded.Results))

	html, err := os.ReadFile(filepath.Join(dir, histogramsFile))
	require.NoError(t, err)
	require.Contains(t, string(html), "share 0")
	require.Contains(t, string(html), "sampler first output")
}

func TestCommands(t *testing.T) {

	t.Run("Params", func(t *testing.T) {
		var out bytes.Buffer

		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"params"})
		require.NoError(t, cmd.Execute())

		require.Contains(t, out.String(), "rejection bound     4288827267")
		require.Contains(t, out.String(), "tail draws          14 words")
	})

	t.Run("Verify", func(t *testing.T) {
		var out bytes.Buffer

		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"verify", "-c", writeConfig(t, "[Parameters]\nQ = 7681\nN = 64\nOrder = 3\n"), "-r", "8"})
		require.NoError(t, cmd.Execute())

		require.Contains(t, out.String(), "q=7681 N=64 d=3: 8 rounds verified")
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cmd := newRootCommand()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"assess", "-c", writeConfig(t, "[Parameters]\nOrder = 40\nQ = 3329\n")})
		require.Error(t, cmd.Execute())
	})
}

func TestVerify(t *testing.T) {
	for _, pl := range []masking.ParametersLiteral{
		masking.KyberOrder1,
		{Q: 3329, N: 16, Order: 0},
		{Q: 12289, N: 0, Order: 2},
	} {
		params, err := masking.NewParametersFromLiteral(pl)
		require.NoError(t, err)

		prng, err := newPRNG("verify")
		require.NoError(t, err)

		require.NoError(t, verify(params, prng, 4, 3))
	}
}
