package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Scaffold is a declared file layout rooted at a base directory.
type Scaffold struct {
	fs     afero.Fs
	base   string
	files  []string
	dirs   []string
	root   *Namespace
	logger zerolog.Logger
}

// New collects entries under base. Nothing is touched on disk until
// [Scaffold.Ensure]. Duplicate files are kept once.
func New(fsys afero.Fs, base string, entries ...Entry) *Scaffold {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	base = filepath.Clean(base)

	var l layout
	for _, e := range entries {
		e.collect(base, &l)
	}

	s := &Scaffold{
		fs:     fsys,
		base:   base,
		files:  dedupe(l.files),
		dirs:   dedupe(l.dirs),
		root:   newNamespace(""),
		logger: zerolog.Nop(),
	}
	for _, f := range s.files {
		s.root.add(s.parts(f), f)
	}
	return s
}

// WithLogger sets the logger used by Ensure.
func (s *Scaffold) WithLogger(l zerolog.Logger) *Scaffold {
	s.logger = l.With().Str("component", "scaffold").Logger()
	return s
}

// Base returns the base directory.
func (s *Scaffold) Base() string { return s.base }

// Files returns every declared file in declaration order.
func (s *Scaffold) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// Root returns the top-level namespace.
func (s *Scaffold) Root() *Namespace { return s.root }

// Lookup returns the file at a dotted namespace path such as
// "src.utils.helpers".
func (s *Scaffold) Lookup(dotted string) (string, bool) {
	return s.root.Lookup(dotted)
}

// Ensure creates the parent directories and empty files of the layout.
// Existing files are left untouched.
func (s *Scaffold) Ensure() error {
	for _, d := range s.dirs {
		if err := s.fs.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	created := 0
	for _, f := range s.files {
		if err := s.fs.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			return fmt.Errorf("create parent of %s: %w", f, err)
		}
		exists, err := afero.Exists(s.fs, f)
		if err != nil {
			return fmt.Errorf("stat %s: %w", f, err)
		}
		if exists {
			continue
		}
		h, err := s.fs.OpenFile(f, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("create %s: %w", f, err)
		}
		if err = h.Close(); err != nil {
			return fmt.Errorf("close %s: %w", f, err)
		}
		created++
	}
	s.logger.Debug().Int("files", len(s.files)).Int("created", created).Msg("file structure ensured")
	return nil
}

// Render draws the layout relative to the base as a tree. Directories
// come before files, each group sorted by name.
func (s *Scaffold) Render() string {
	if len(s.files) == 0 && len(s.dirs) == 0 {
		return "Empty file structure"
	}

	rootDir := &renderDir{}
	for _, f := range s.files {
		rootDir.addFile(s.relParts(f))
	}
	for _, d := range s.dirs {
		rootDir.addDir(s.relParts(d))
	}
	return rootDir.tree(filepath.Base(s.base) + "/").String()
}

// String returns the base directory.
func (s *Scaffold) String() string { return s.base }

// parts returns the namespace path of a file: its components relative to
// the base, or just its name when it lives outside the base.
func (s *Scaffold) parts(p string) []string {
	rel, err := filepath.Rel(s.base, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{filepath.Base(p)}
	}
	return strings.Split(rel, string(filepath.Separator))
}

func (s *Scaffold) relParts(p string) []string {
	rel, err := filepath.Rel(s.base, p)
	if err != nil {
		return []string{p}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{p}
	}
	return strings.Split(rel, string(filepath.Separator))
}

type renderDir struct {
	dirs  map[string]*renderDir
	files map[string]struct{}
}

func (d *renderDir) child(name string) *renderDir {
	if d.dirs == nil {
		d.dirs = make(map[string]*renderDir)
	}
	c, ok := d.dirs[name]
	if !ok {
		c = &renderDir{}
		d.dirs[name] = c
	}
	return c
}

func (d *renderDir) addFile(parts []string) {
	cur := d
	for _, p := range parts[:len(parts)-1] {
		cur = cur.child(p)
	}
	if cur.files == nil {
		cur.files = make(map[string]struct{})
	}
	cur.files[parts[len(parts)-1]] = struct{}{}
}

func (d *renderDir) addDir(parts []string) {
	cur := d
	for _, p := range parts {
		cur = cur.child(p)
	}
}

func (d *renderDir) tree(label string) *tree.Tree {
	t := tree.Root(label)
	for _, name := range sortedKeys(d.dirs) {
		t.Child(d.dirs[name].tree(name + "/"))
	}
	for _, name := range sortedKeys(d.files) {
		t.Child(name)
	}
	return t
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CleanName turns a file or directory name into a namespace key: the last
// extension is dropped, characters other than letters, digits and
// underscores become underscores, and a name not starting with a letter or
// underscore gets an underscore prefix.
func CleanName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
	if name != "" {
		first := []rune(name)[0]
		if !unicode.IsLetter(first) && first != '_' {
			name = "_" + name
		}
	}
	return name
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
