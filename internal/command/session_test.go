package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/skinstore/internal/imaging"
	"github.com/zjrosen/skinstore/internal/skin"
	"github.com/zjrosen/skinstore/internal/tagtree"
)

// fakeDecoder returns a fixed 2-pixel image for any existing path.
func fakeDecoder(path string) (imaging.RawImage, error) {
	if _, err := os.Stat(path); err != nil {
		return imaging.RawImage{}, err
	}
	return imaging.RawImage{Width: 2, Height: 1, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}, nil
}

type fixture struct {
	dir     string
	reg     *skin.Registry
	session *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "steve.json"), []byte(`{"format_version":"1.12.0"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "steve.png"), []byte("png"), 0o644))

	reg := skin.NewRegistry()
	require.NoError(t, reg.Initialize(nil))

	ids := 0
	session := NewSession(reg,
		WithDataDir(dir),
		WithImageDecoder(fakeDecoder),
		WithIDGenerator(func() string {
			ids++
			return "id-" + string(rune('0'+ids))
		}),
	)
	return &fixture{dir: dir, reg: reg, session: session}
}

// === Unit Tests: Load ===

func TestSession_Load(t *testing.T) {
	f := newFixture(t)

	res, err := f.session.Run(VerbLoad, []string{"steve.json", "steve.png", "humanoid.custom"})
	require.NoError(t, err)
	require.Equal(t, "Skin loaded successfully", res.Message)
	require.Equal(t, "id-1", res.Record.ID)
	require.Equal(t, "geometry.humanoid.custom", res.Record.GeometryName)
	require.Equal(t, []byte(`{"format_version":"1.12.0"}`), res.Record.GeometryData)
	require.NotNil(t, res.Record.CapeData)
	require.Empty(t, res.Record.CapeData)

	current, ok := f.session.Current()
	require.True(t, ok)
	require.True(t, res.Record.Equal(current))
}

func TestSession_Load_KeepsExistingPrefix(t *testing.T) {
	f := newFixture(t)

	rec, err := f.session.Load("steve.json", "steve.png", "geometry.humanoid")
	require.NoError(t, err)
	require.Equal(t, "geometry.humanoid", rec.GeometryName)
}

func TestSession_Load_ReplacesCurrent(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Load("steve.json", "steve.png", "a")
	require.NoError(t, err)
	second, err := f.session.Load("steve.json", "steve.png", "b")
	require.NoError(t, err)

	current, _ := f.session.Current()
	require.Equal(t, second.ID, current.ID)
	require.Equal(t, 1, f.reg.Len())
}

func TestSession_Load_MissingFiles(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.Load("missing.json", "steve.png", "x")
	require.ErrorIs(t, err, ErrFileNotFound)

	_, err = f.session.Load("steve.json", "missing.png", "x")
	require.ErrorIs(t, err, ErrFileNotFound)

	_, ok := f.session.Current()
	require.False(t, ok)
}

func TestSession_Load_DecoderError(t *testing.T) {
	f := newFixture(t)
	f.session.decodeImage = func(string) (imaging.RawImage, error) {
		return imaging.RawImage{}, imaging.ErrInvalidSize
	}

	_, err := f.session.Load("steve.json", "steve.png", "x")
	require.ErrorIs(t, err, imaging.ErrInvalidSize)
}

// === Unit Tests: Save / Test ===

func TestSession_Save(t *testing.T) {
	f := newFixture(t)
	loaded, err := f.session.Load("steve.json", "steve.png", "x")
	require.NoError(t, err)

	res, err := f.session.Run(VerbSave, []string{"mine"})
	require.NoError(t, err)
	require.Equal(t, "Saved my skin as mine.", res.Message)

	saved, ok := f.session.Get("mine")
	require.True(t, ok)
	require.True(t, loaded.Equal(saved))
	require.Equal(t, []string{"mine"}, f.session.Saved())
}

func TestSession_Save_RefusesOverwrite(t *testing.T) {
	f := newFixture(t)
	first, err := f.session.Load("steve.json", "steve.png", "x")
	require.NoError(t, err)
	require.NoError(t, f.session.Save("mine"))

	_, err = f.session.Load("steve.json", "steve.png", "y")
	require.NoError(t, err)
	err = f.session.Save("mine")
	require.ErrorIs(t, err, skin.ErrAlreadyExists)

	saved, _ := f.session.Get("mine")
	require.Equal(t, first.ID, saved.ID)
}

func TestSession_Save_NothingLoaded(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.session.Save("mine"), ErrNoCurrentSkin)
}

func TestSession_Save_ReservedName(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Load("steve.json", "steve.png", "x")
	require.NoError(t, err)

	require.ErrorIs(t, f.session.Save(DefaultLiveSlot), ErrReservedName)
}

func TestSession_Save_NameTooLong(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Load("steve.json", "steve.png", "x")
	require.NoError(t, err)

	var encErr *tagtree.EncodingError
	require.True(t, errors.As(f.session.Save(strings.Repeat("n", 1<<16)), &encErr))
	require.Empty(t, f.session.Saved())

	_, err = f.reg.Serialize()
	require.NoError(t, err)
}

func TestSession_Test(t *testing.T) {
	f := newFixture(t)
	first, err := f.session.Load("steve.json", "steve.png", "x")
	require.NoError(t, err)
	require.NoError(t, f.session.Save("first"))
	_, err = f.session.Load("steve.json", "steve.png", "y")
	require.NoError(t, err)

	res, err := f.session.Run(VerbTest, []string{"first"})
	require.NoError(t, err)
	require.Equal(t, first.ID, res.Record.ID)

	current, _ := f.session.Current()
	require.Equal(t, first.ID, current.ID)
}

func TestSession_Test_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Test("ghost")
	require.ErrorIs(t, err, ErrSkinNotFound)
}

// === Unit Tests: Run ===

func TestSession_Run(t *testing.T) {
	f := newFixture(t)

	res, err := f.session.Run(VerbLoad, []string{"steve.json", "steve.png", "x"})
	require.NoError(t, err)
	require.Equal(t, VerbLoad, res.Verb)

	_, err = f.session.Run(VerbSave, nil)
	require.ErrorIs(t, err, ErrUsage)
	require.Contains(t, err.Error(), "save <name>")

	res, err = f.session.Run(VerbSave, []string{"mine"})
	require.NoError(t, err)
	require.Equal(t, "Saved my skin as mine.", res.Message)

	res, err = f.session.Run(VerbTest, []string{"mine"})
	require.NoError(t, err)
	require.Equal(t, "Applied skin mine.", res.Message)

	_, err = f.session.Run(Verb(9), nil)
	require.ErrorIs(t, err, ErrUnknownVerb)
}

func TestSession_UninitializedRegistry(t *testing.T) {
	f := newFixture(t)
	s := NewSession(skin.NewRegistry(), WithDataDir(f.dir), WithImageDecoder(fakeDecoder))

	_, err := s.Load("steve.json", "steve.png", "x")
	require.True(t, errors.Is(err, skin.ErrNotInitialized))
}
