package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedMatchesDefaults(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	want := DefaultTuning()
	require.Equal(t, want.Push, got.Push)
	require.Equal(t, want.Physics, got.Physics)
	require.Equal(t, want.Player.WalkSpeed, got.Player.WalkSpeed)
	require.InDelta(t, want.Player.MaxPitch, got.Player.MaxPitch, 1e-3)
	require.InDelta(t, want.Weapon.SubStep, got.Weapon.SubStep, 1e-6)
	require.Equal(t, want.Render.Zenith(), got.Render.Zenith())
}

func TestParseOverlaysDefaults(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, tu Tuning)
		wantErr error
	}{
		{
			name: "partial_section",
			yaml: "player:\n  walk_speed: 3\n  sprint_speed: 4\n",
			check: func(t *testing.T, tu Tuning) {
				require.Equal(t, 3.0, tu.Player.WalkSpeed)
				require.Equal(t, DefaultTuning().Player.JumpVelocity, tu.Player.JumpVelocity)
			},
		},
		{
			name: "nested_character",
			yaml: "player:\n  character:\n    autostep_max_height: 0.3\n",
			check: func(t *testing.T, tu Tuning) {
				require.Equal(t, 0.3, tu.Player.Character.AutostepMaxHeight)
				require.Equal(t, DefaultTuning().Player.Character.Offset, tu.Player.Character.Offset)
			},
		},
		{
			name: "named_sky_color",
			yaml: "render:\n  sky_zenith: midnightblue\n",
			check: func(t *testing.T, tu Tuning) {
				require.Equal(t, uint8(0x19), tu.Render.Zenith().R)
			},
		},
		{name: "zero_push_interval", yaml: "push:\n  interval: 0\n", wantErr: ErrInvalidTuning},
		{name: "sprint_slower_than_walk", yaml: "player:\n  sprint_speed: 1\n", wantErr: ErrInvalidTuning},
		{name: "bad_fov", yaml: "render:\n  fov: 200\n", wantErr: ErrInvalidTuning},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tu, err := Parse([]byte(tc.yaml))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, tu)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("player: [1, 2"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("push:\n  interval: 5\n"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	_, ok := w.Poll()
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("push:\n  interval: 9\n"), 0o644))
	var got Tuning
	require.Eventually(t, func() bool {
		tu, ok := w.Poll()
		if ok {
			got = tu
		}
		return ok
	}, 3*time.Second, 20*time.Millisecond)
	require.Equal(t, 9, got.Push.Interval)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("push:\n  interval: 5\n"), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	_, ok := w.Poll()
	require.False(t, ok)
}

func TestWatcherReloadLeavesInfoLogToCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("push:\n  interval: 7\n"), 0o644))

	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	w := &Watcher{path: path}
	tu, ok := w.reload(true)
	require.True(t, ok)
	require.Equal(t, 7, tu.Push.Interval)
	require.Empty(t, buf.String())
}
