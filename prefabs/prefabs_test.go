package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestEmbeddedDocumentsDecode(t *testing.T) {
	scene, err := LoadSpec[SceneSpec]("prefabs/scene.yaml")
	require.NoError(t, err)
	require.NoError(t, scene.Validate())
	require.NotEmpty(t, scene.Statics)
	require.NotNil(t, scene.Model)

	model, err := LoadSpec[ModelSpec](scene.Model.Path)
	require.NoError(t, err)
	require.NoError(t, model.Validate())

	_, err = LoadSpec[SceneSpec]("missing.yaml")
	require.Error(t, err)
}

func TestShapeSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		shape ShapeSpec
		ok    bool
	}{
		{"box", ShapeSpec{Kind: "box", HalfExtents: mgl64.Vec3{1, 1, 1}}, true},
		{"flat box", ShapeSpec{Kind: "box", HalfExtents: mgl64.Vec3{1, 0, 1}}, false},
		{"ramp", ShapeSpec{Kind: "ramp", HalfExtents: mgl64.Vec3{2, 1, 1}}, true},
		{"sphere", ShapeSpec{Kind: "sphere", Radius: 0.5}, true},
		{"capsule without radius", ShapeSpec{Kind: "capsule", HalfHeight: 1}, false},
		{"unknown", ShapeSpec{Kind: "torus", Radius: 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shape.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestModelSpecNeedsParts(t *testing.T) {
	require.ErrorIs(t, ModelSpec{Name: "empty"}.Validate(), ErrInvalidSpec)
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want color.RGBA
		err  bool
	}{
		{"hex", `c: "#ff8000"`, color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"hex alpha", `c: "#00000000"`, color.RGBA{}, false},
		{"name", `c: Tomato`, colornames.Tomato, false},
		{"short hex", `c: "#fff"`, color.RGBA{}, true},
		{"not hex", `c: "#gggggg"`, color.RGBA{}, true},
		{"list", `c: [1, 2, 3]`, color.RGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSpec[struct {
				C YAMLColor `yaml:"c"`
			}](tc.name, []byte(tc.doc))
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got.C.RGBAOr(colornames.Black))
		})
	}

	var unset YAMLColor
	require.Equal(t, colornames.Red, unset.RGBAOr(colornames.Red))
}

func TestLoadPathPrefersExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\n"), 0o644))

	data, err := LoadPath(path, "scene.yaml")
	require.NoError(t, err)
	require.Equal(t, "name: custom\n", string(data))

	data, err = LoadPath("", "scene.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestWatcherReportsYAMLChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the yaml file")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "closing twice is fine")
	require.Eventually(t, func() bool {
		_, ok := <-w.Events
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestWatcherFileOnlyReportsThatFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(target, []byte("a: 1\n"), 0o644))

	w, err := NewWatcher(target)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("b: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("a: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the watched file")
	}
}
