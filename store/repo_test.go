package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccgrid/bank"
)

func tempRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.json")
	return NewFileRepository(path), dir
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	repo, _ := tempRepo(t)

	banks, err := repo.LoadBanks()
	require.NoError(t, err)

	require.Contains(t, banks, bank.DefaultBankName)
	b := banks[bank.DefaultBankName]
	require.Len(t, b.Params, bank.NumParams)
	assert.Equal(t, "P00", b.Params[0].Name)
}

func TestRoundTrip(t *testing.T) {
	repo, _ := tempRepo(t)

	xxx := bank.New("XXX")
	xxx, err := xxx.UpdateValue(0, 65)
	require.NoError(t, err)
	xxx, err = xxx.Rename(1, "CUT")
	require.NoError(t, err)
	xxx, err = xxx.UpdateChannel(1, 9)
	require.NoError(t, err)
	xxx, err = xxx.UpdateControlNumber(1, 74)
	require.NoError(t, err)

	saved := map[string]bank.Bank{
		"XXX": xxx,
		"AAA": bank.New("AAA"),
	}
	require.NoError(t, repo.SaveBanks(saved))

	loaded, err := repo.LoadBanks()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadPadsShortBanks(t *testing.T) {
	repo, dir := tempRepo(t)

	raw := `{
		"preferred_midi_port": null,
		"banks": {
			"SRT": {
				"params": ["CUT", "RES"],
				"values": {"CUT": 64, "RES": 32},
				"channels": {"CUT": 2},
				"control_numbers": {"CUT": 74}
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banks.json"), []byte(raw), 0644))

	banks, err := repo.LoadBanks()
	require.NoError(t, err)

	b := banks["SRT"]
	require.Len(t, b.Params, bank.NumParams)
	assert.Equal(t, bank.Parameter{Name: "CUT", Value: 64, Channel: 2, ControlNumber: 74}, b.Params[0])
	assert.Equal(t, bank.Parameter{Name: "RES", Value: 32}, b.Params[1])
	assert.Equal(t, bank.Parameter{Name: "P02"}, b.Params[2], "missing entries get defaults")
	assert.Equal(t, bank.Parameter{Name: "P63"}, b.Params[63])
}

func TestLoadClampsStoredValues(t *testing.T) {
	repo, dir := tempRepo(t)

	raw := `{
		"banks": {
			"XXX": {
				"params": ["CUT"],
				"values": {"CUT": 999},
				"channels": {"CUT": 99},
				"control_numbers": {"CUT": -4}
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banks.json"), []byte(raw), 0644))

	banks, err := repo.LoadBanks()
	require.NoError(t, err)

	p := banks["XXX"].Params[0]
	assert.Equal(t, 127, p.Value)
	assert.Equal(t, 15, p.Channel)
	assert.Equal(t, 0, p.ControlNumber)
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	repo, dir := tempRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banks.json"), []byte("{not json"), 0644))

	banks, err := repo.LoadBanks()
	assert.Error(t, err)
	assert.Contains(t, banks, bank.DefaultBankName)
}

func TestPreferredPort(t *testing.T) {
	repo, _ := tempRepo(t)

	port, err := repo.PreferredPort()
	require.NoError(t, err)
	assert.Empty(t, port)

	require.NoError(t, repo.SetPreferredPort("IAC Driver Bus 1"))

	port, err = repo.PreferredPort()
	require.NoError(t, err)
	assert.Equal(t, "IAC Driver Bus 1", port)

	// Saving banks keeps the stored preference.
	require.NoError(t, repo.SaveBanks(map[string]bank.Bank{"XXX": bank.New("XXX")}))
	port, err = repo.PreferredPort()
	require.NoError(t, err)
	assert.Equal(t, "IAC Driver Bus 1", port)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	repo, dir := tempRepo(t)
	require.NoError(t, repo.SaveBanks(map[string]bank.Bank{"XXX": bank.New("XXX")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "banks.json", entries[0].Name())
}
