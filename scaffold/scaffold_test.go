package scaffold

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout() []Entry {
	return []Entry{
		File("test.txt"),
		Dir("src",
			File("main.py"),
			Dir("utils",
				File("helpers.py"),
				Dir("config", File("settings.toml"), File("database.toml")),
			),
			Dir("tests", File("test_main.py"), File("test_utils.py")),
		),
		Dir("docs", Group(File("readme.md"), File("changelog.md"))),
		Path("logs/app.log"),
	}
}

// ── New / Lookup ──────────────────────────────────────────────────────────────

func TestNew_CollectsFilesInOrder(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/proj", sampleLayout()...)

	assert.Equal(t, []string{
		"/proj/test.txt",
		"/proj/src/main.py",
		"/proj/src/utils/helpers.py",
		"/proj/src/utils/config/settings.toml",
		"/proj/src/utils/config/database.toml",
		"/proj/src/tests/test_main.py",
		"/proj/src/tests/test_utils.py",
		"/proj/docs/readme.md",
		"/proj/docs/changelog.md",
		"/proj/logs/app.log",
	}, s.Files())
}

func TestLookup(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/proj", sampleLayout()...)

	tests := []struct {
		dotted string
		want   string
		found  bool
	}{
		{dotted: "test", want: "/proj/test.txt", found: true},
		{dotted: "src.utils.helpers", want: "/proj/src/utils/helpers.py", found: true},
		{dotted: "src.utils.config.database", want: "/proj/src/utils/config/database.toml", found: true},
		{dotted: "logs.app", want: "/proj/logs/app.log", found: true},
		{dotted: "src.missing", found: false},
		{dotted: "nope.helpers", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.dotted, func(t *testing.T) {
			got, ok := s.Lookup(tt.dotted)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	src, ok := s.Root().Child("src")
	require.True(t, ok)
	assert.Equal(t, []string{"tests", "utils"}, src.Children())
	assert.Equal(t, []string{"main"}, src.Files())
}

func TestNew_DeduplicatesAndKeepsAbsolutePaths(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/proj", File("a.txt"), Path("a.txt"), Path("/var/log/x.log"))

	assert.Equal(t, []string{"/proj/a.txt", "/var/log/x.log"}, s.Files())
	got, ok := s.Lookup("x")
	require.True(t, ok, "files outside the base live at the root namespace")
	assert.Equal(t, "/var/log/x.log", got)
}

// ── Ensure ────────────────────────────────────────────────────────────────────

func TestEnsure_CreatesFilesAndKeepsExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/proj/src/main.py", []byte("print()"), 0o644))

	s := New(fsys, "/proj", append(sampleLayout(), Dir("empty"))...)
	require.NoError(t, s.Ensure())

	for _, f := range s.Files() {
		exists, err := afero.Exists(fsys, f)
		require.NoError(t, err)
		assert.True(t, exists, f)
	}

	raw, err := afero.ReadFile(fsys, "/proj/src/main.py")
	require.NoError(t, err)
	assert.Equal(t, "print()", string(raw))

	isDir, err := afero.IsDir(fsys, "/proj/empty")
	require.NoError(t, err)
	assert.True(t, isDir)

	require.NoError(t, s.Ensure(), "ensure is repeatable")
}

// ── FromValue ─────────────────────────────────────────────────────────────────

func TestFromValue_DecodedTOML(t *testing.T) {
	const layoutTOML = `
files = ["test.txt"]

[src]
"main.py" = ""
tests = ["test_main.py"]

[src.utils]
"helpers.py" = {}

[docs]
guide = "index.md"
`
	var decoded map[string]any
	require.NoError(t, toml.Unmarshal([]byte(layoutTOML), &decoded))

	entry, err := FromValue(decoded)
	require.NoError(t, err)

	s := New(afero.NewMemMapFs(), "/p", entry)
	assert.ElementsMatch(t, []string{
		"/p/files/test.txt",
		"/p/src/main.py",
		"/p/src/tests/test_main.py",
		"/p/src/utils/helpers.py",
		"/p/docs/guide/index.md",
	}, s.Files())
}

func TestFromValue_NilValueIsFile(t *testing.T) {
	entry, err := FromValue(map[string]any{"src": map[string]any{"main.py": nil}})
	require.NoError(t, err)

	s := New(afero.NewMemMapFs(), "/p", entry)
	assert.Equal(t, []string{"/p/src/main.py"}, s.Files())
}

func TestFromValue_Unsupported(t *testing.T) {
	_, err := FromValue(42)
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = FromValue(map[string]any{"src": []any{true}})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

// ── Render / CleanName ────────────────────────────────────────────────────────

func TestRender(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/proj", File("b.txt"), Dir("src", File("main.go")), File("a.txt"))
	out := s.Render()

	assert.Contains(t, out, "proj/")
	assert.Contains(t, out, "src/")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "└── ")
	assert.Less(t, strings.Index(out, "src/"), strings.Index(out, "a.txt"), "directories first")
	assert.Less(t, strings.Index(out, "a.txt"), strings.Index(out, "b.txt"), "files sorted")

	assert.Equal(t, "Empty file structure", New(afero.NewMemMapFs(), "/proj").Render())
}

func TestCleanName(t *testing.T) {
	tests := map[string]string{
		"helpers.py":      "helpers",
		"archive.tar.gz":  "archive_tar",
		"my-file name.md": "my_file_name",
		"1st.txt":         "_1st",
		".env":            "_env",
		"_private":        "_private",
		"Ünïcode.txt":     "Ünïcode",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, CleanName(in))
		})
	}
}
