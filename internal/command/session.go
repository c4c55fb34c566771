package command

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/zjrosen/skinstore/internal/imaging"
	"github.com/zjrosen/skinstore/internal/log"
	"github.com/zjrosen/skinstore/internal/paths"
	"github.com/zjrosen/skinstore/internal/skin"
)

var (
	// ErrUsage is returned when a verb gets too few arguments.
	ErrUsage = errors.New("usage")
	// ErrFileNotFound is returned by load when an input file is missing.
	ErrFileNotFound = errors.New("file not found")
	// ErrSkinNotFound is returned by test for an unknown name.
	ErrSkinNotFound = errors.New("skin not found")
	// ErrNoCurrentSkin is returned by save before anything was loaded.
	ErrNoCurrentSkin = errors.New("no current skin")
	// ErrReservedName is returned when saving under the live slot name.
	ErrReservedName = errors.New("reserved name")
)

// DefaultLiveSlot is the registry key holding the current skin.
const DefaultLiveSlot = "@live"

// DefaultGeometryPrefix is prepended to geometry names that lack it.
const DefaultGeometryPrefix = "geometry."

// ImageDecoder turns an image file into raw skin bytes.
type ImageDecoder func(path string) (imaging.RawImage, error)

// Result is the outcome of a successful verb.
type Result struct {
	Verb    Verb
	Name    string
	Record  skin.Record
	Message string
}

// Session runs verbs against a registry. The current skin lives in the
// registry under the live slot so it survives between runs.
type Session struct {
	registry       *skin.Registry
	liveSlot       string
	dataDir        string
	geometryPrefix string
	newID          func() string
	decodeImage    ImageDecoder
}

// Option configures a Session.
type Option func(*Session)

// WithLiveSlot sets the registry key of the current skin.
func WithLiveSlot(name string) Option {
	return func(s *Session) { s.liveSlot = name }
}

// WithDataDir sets the directory relative file paths resolve against.
func WithDataDir(dir string) Option {
	return func(s *Session) { s.dataDir = dir }
}

// WithGeometryPrefix sets the prefix enforced on geometry names.
func WithGeometryPrefix(prefix string) Option {
	return func(s *Session) { s.geometryPrefix = prefix }
}

// WithIDGenerator overrides the record identifier source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithImageDecoder overrides the image decoder.
func WithImageDecoder(fn ImageDecoder) Option {
	return func(s *Session) { s.decodeImage = fn }
}

// NewSession creates a Session over an initialized registry.
func NewSession(reg *skin.Registry, opts ...Option) *Session {
	s := &Session{
		registry:       reg,
		liveSlot:       DefaultLiveSlot,
		geometryPrefix: DefaultGeometryPrefix,
		newID:          func() string { return uuid.New().String() },
		decodeImage:    imaging.DecodeSkinFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LiveSlot returns the registry key of the current skin.
func (s *Session) LiveSlot() string { return s.liveSlot }

// Run executes v with args.
func (s *Session) Run(v Verb, args []string) (Result, error) {
	if len(args) < v.Args() {
		return Result{}, fmt.Errorf("%w: %s", ErrUsage, v.Usage())
	}
	log.Debug(log.CatCmd, "Running verb", "verb", v, "args", len(args))

	switch v {
	case VerbLoad:
		rec, err := s.Load(args[0], args[1], args[2])
		if err != nil {
			return Result{}, err
		}
		return Result{Verb: v, Record: rec, Message: "Skin loaded successfully"}, nil
	case VerbSave:
		if err := s.Save(args[0]); err != nil {
			return Result{}, err
		}
		return Result{Verb: v, Name: args[0], Message: fmt.Sprintf("Saved my skin as %s.", args[0])}, nil
	case VerbTest:
		rec, err := s.Test(args[0])
		if err != nil {
			return Result{}, err
		}
		return Result{Verb: v, Name: args[0], Record: rec, Message: fmt.Sprintf("Applied skin %s.", args[0])}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownVerb, v)
	}
}

// Load builds a record from a geometry JSON file and a PNG texture and
// makes it the current skin.
func (s *Session) Load(geometryFile, imageFile, geometryName string) (skin.Record, error) {
	geometryPath := paths.Resolve(s.dataDir, geometryFile)
	imagePath := paths.Resolve(s.dataDir, imageFile)
	if !paths.Exists(geometryPath) || !paths.Exists(imagePath) {
		return skin.Record{}, ErrFileNotFound
	}

	if !strings.HasPrefix(geometryName, s.geometryPrefix) {
		geometryName = s.geometryPrefix + geometryName
	}

	img, err := s.decodeImage(imagePath)
	if err != nil {
		return skin.Record{}, fmt.Errorf("loading image: %w", err)
	}
	geometry, err := os.ReadFile(geometryPath) //nolint:gosec // G304: resolved against the data dir
	if err != nil {
		return skin.Record{}, fmt.Errorf("reading geometry: %w", err)
	}

	rec := skin.Record{
		ID:           s.newID(),
		ImageData:    img.Pix,
		CapeData:     []byte{},
		GeometryName: geometryName,
		GeometryData: geometry,
	}
	if err := s.registry.Replace(s.liveSlot, rec); err != nil {
		return skin.Record{}, err
	}
	log.Info(log.CatCmd, "Loaded skin", "id", rec.ID, "geometry", geometryName)
	return rec, nil
}

// Save stores the current skin under name. Existing names are never
// overwritten.
func (s *Session) Save(name string) error {
	if name == s.liveSlot {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	current, ok := s.registry.Get(s.liveSlot)
	if !ok {
		return ErrNoCurrentSkin
	}
	return s.registry.Put(name, current)
}

// Test makes the skin saved under name the current skin.
func (s *Session) Test(name string) (skin.Record, error) {
	rec, ok := s.registry.Get(name)
	if !ok {
		return skin.Record{}, fmt.Errorf("%w: %s", ErrSkinNotFound, name)
	}
	if err := s.registry.Replace(s.liveSlot, rec); err != nil {
		return skin.Record{}, err
	}
	return rec, nil
}

// Current returns the current skin.
func (s *Session) Current() (skin.Record, bool) {
	return s.registry.Get(s.liveSlot)
}

// Saved returns the names of saved skins, excluding the live slot.
func (s *Session) Saved() []string {
	names := s.registry.Names()
	out := names[:0]
	for _, n := range names {
		if n != s.liveSlot {
			out = append(out, n)
		}
	}
	return out
}

// Get returns a saved skin by name.
func (s *Session) Get(name string) (skin.Record, bool) {
	return s.registry.Get(name)
}
