package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/platformer/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadActorSpecPlayer(t *testing.T) {
	spec, err := LoadActorSpec("player.yaml")
	require.NoError(t, err)

	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, movement.DefaultStats(), spec.Stats)
	assert.Equal(t, PhysicsBodyComponentSpec{Width: 0.8, Height: 1.6}, spec.Collider)
	assert.Equal(t, TransformComponentSpec{X: 4, Y: 2}, spec.Spawn)
}

func TestDecodeMovementSpecKeepsDefaults(t *testing.T) {
	stats, err := DecodeMovementSpec(map[string]any{"max_speed": 12, "dash_enabled": false})
	require.NoError(t, err)

	assert.Equal(t, 12.0, stats.MaxSpeed)
	assert.False(t, stats.DashEnabled)
	assert.Equal(t, movement.DefaultStats().JumpPower, stats.JumpPower)
}

func TestDecodeMovementSpecRejectsInvalidStats(t *testing.T) {
	_, err := DecodeMovementSpec(map[string]any{"hard_fall_speed": 5})
	assert.ErrorIs(t, err, movement.ErrInvalidStats)
}

func TestActorSpecFromNeedsMovementAndCollider(t *testing.T) {
	_, err := ActorSpecFrom(EntityBuildSpec{Name: "ghost", Components: map[string]any{}})
	assert.Error(t, err)

	_, err = ActorSpecFrom(EntityBuildSpec{Name: "flat", Components: map[string]any{
		"movement":     map[string]any{},
		"physics_body": map[string]any{"width": 1},
	}})
	assert.Error(t, err)
}

func TestLoadCameraSpec(t *testing.T) {
	spec, err := LoadCameraSpec("camera.yaml")
	require.NoError(t, err)

	assert.Equal(t, "player", spec.TargetName)
	assert.Equal(t, 5.0, spec.LerpSpeed)
	assert.Equal(t, int64(7), spec.Seed)
	require.NotNil(t, spec.Clamp)
	assert.Equal(t, 38.0, spec.Clamp.MaxX)
	assert.Equal(t, 0.2, spec.Shake.Duration)
}

func TestLoadLevelSpec(t *testing.T) {
	spec, err := LoadLevelSpec("level.yaml")
	require.NoError(t, err)

	assert.Equal(t, "proving_grounds", spec.Name)
	assert.Len(t, spec.Solids, 8)
	require.Len(t, spec.Zones, 2)

	zone := spec.Zones[1]
	assert.Equal(t, "low_gravity", zone.Name)
	assert.Equal(t, "low_gravity.tengo", zone.Script)
	assert.Equal(t, 0.4, zone.Params["gravity_mult"])
	assert.Equal(t, 1, zone.Params["extra_jumps"])
	assert.Equal(t, 12.0, zone.Height)
	require.NotNil(t, zone.Color)

	for _, z := range spec.Zones {
		_, err := LoadScript(z.Script)
		assert.NoError(t, err, z.Script)
	}
}

func TestLevelValidate(t *testing.T) {
	base := func() LevelSpec {
		return LevelSpec{
			Width:  10,
			Height: 10,
			Solids: []BoxSpec{{Width: 1, Height: 1}},
			Zones:  []ZoneSpec{{Name: "z", Script: "z.tengo", BoxSpec: BoxSpec{Width: 1, Height: 1}}},
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(*LevelSpec){
		"empty_level":    func(l *LevelSpec) { l.Width = 0 },
		"flat_solid":     func(l *LevelSpec) { l.Solids[0].Height = 0 },
		"flat_zone":      func(l *LevelSpec) { l.Zones[0].Width = -1 },
		"zone_no_script": func(l *LevelSpec) { l.Zones[0].Script = " " },
	}
	for name, tune := range cases {
		t.Run(name, func(t *testing.T) {
			l := base()
			tune(&l)
			assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)
		})
	}
}

func TestScriptPaths(t *testing.T) {
	for _, in := range []string{"speed_boost.tengo", "scripts/speed_boost.tengo", "prefabs/scripts/speed_boost.tengo"} {
		assert.Equal(t, "scripts/speed_boost.tengo", cleanScriptPath(in), in)
	}
	assert.Equal(t, "level.yaml", cleanPrefabPath("prefabs/level.yaml"))

	assert.Equal(t, "scripts/low_gravity.tengo", Name(filepath.Join("game", "prefabs", "scripts", "low_gravity.tengo")))
	assert.Equal(t, "player.yaml", Name(filepath.Join("tmp", "player.yaml")))
}

func TestYAMLColor(t *testing.T) {
	var box BoxSpec
	require.NoError(t, yaml.Unmarshal([]byte(`{width: 1, height: 1, color: "#ff800040"}`), &box))
	require.NotNil(t, box.Color)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0x40}, box.Color.Color)

	assert.Error(t, yaml.Unmarshal([]byte(`{color: "#fff"}`), &box))
	assert.Error(t, yaml.Unmarshal([]byte(`{color: [1, 2]}`), &box))
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	waitFor := func(want Change) {
		t.Helper()
		deadline := time.After(3 * time.Second)
		for {
			select {
			case got, ok := <-w.Events:
				require.True(t, ok, "watcher closed")
				if got == want {
					return
				}
			case err := <-w.Errors:
				require.NoError(t, err)
			case <-deadline:
				t.Fatalf("no change reported for %s", want.Name)
			}
		}
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: player\n"), 0o644))
	waitFor(Change{Name: "player.yaml", Kind: ChangeSpec})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gust.tengo"), []byte("x := 1\n"), 0o644))
	waitFor(Change{Name: "gust.tengo", Kind: ChangeScript})

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
