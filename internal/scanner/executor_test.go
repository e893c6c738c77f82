package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/harrison/sweep/internal/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree writes the given relative-path -> content map under a temp dir.
func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// sortedRel relativizes result paths for stable comparison; traversal order
// is OS-dependent so tests compare sets.
func sortedRel(t *testing.T, root string, results []string) []string {
	t.Helper()
	rels := make([]string, 0, len(results))
	for _, r := range results {
		rel, err := filepath.Rel(root, r)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)
	return rels
}

func TestExecuteContentSearch(t *testing.T) {
	root := buildTree(t, map[string]string{
		"app/.env":      "DB_HOST=localhost\nexport TOKEN=abc\n",
		"app/notes.txt": "nothing interesting\n",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:  `grep -rniE "KEYWORDS" .`,
		Keywords: []string{"secret", "token"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Case-insensitive match, 1-based line number, newline stripped
	assert.True(t, strings.HasSuffix(results[0], ":2:export TOKEN=abc"), "got %q", results[0])
	assert.Contains(t, results[0], filepath.Join("app", ".env"))
}

func TestExecuteContentSearchExtensionFilter(t *testing.T) {
	root := buildTree(t, map[string]string{
		"config.env": "password=hunter2\n",
		"config.png": "password=hunter2\n",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:    `grep -rniE "KEYWORDS" . EXTENSIONS`,
		Keywords:   []string{"password"},
		Extensions: []string{"*.env"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "config.env:1:password=hunter2")
}

func TestExecuteContentSearchNoKeywords(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "secret\n"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command: `grep -rniE "KEYWORDS" .`,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteContentSearchMultipleHitsPerFile(t *testing.T) {
	root := buildTree(t, map[string]string{
		"creds.txt": "user=admin\npassword=a\nhost=db\npassword=b\n",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:  `grep -rniE "KEYWORDS" .`,
		Keywords: []string{"password"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0], ":2:password=a")
	assert.Contains(t, results[1], ":4:password=b")
}

func TestExecuteContentSearchBinaryContent(t *testing.T) {
	root := t.TempDir()
	// Invalid UTF-8 around a keyword must not abort the file
	data := append([]byte{0xff, 0xfe, '\n'}, []byte("secret=1\n")...)
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), data, 0644))
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:  `grep -rniE "KEYWORDS" .`,
		Keywords: []string{"secret"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], ":2:secret=1")
}

func TestExecuteLocateByExtensions(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a/b/config.bak": "x",
		"a/c/readme.md":  "x",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:    "find . -type f EXTENSIONS",
		Extensions: []string{"*.bak"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/config.bak"}, sortedRel(t, root, results))
}

func TestExecuteLocateExtensionsShortCircuit(t *testing.T) {
	root := buildTree(t, map[string]string{"data.bak": "x"})
	exec := &Executor{Root: root}

	// Both patterns match, but the extensions branch emits once per file
	results, err := exec.Execute(ruleset.Section{
		Command:    "find . -type f EXTENSIONS",
		Extensions: []string{"*.bak", "data.*"},
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExecuteLocateByFilesDuplicatePerPattern(t *testing.T) {
	root := buildTree(t, map[string]string{"id_rsa": "key"})
	exec := &Executor{Root: root}

	// The files branch emits once per matching pattern, no deduplication
	results, err := exec.Execute(ruleset.Section{
		Command: "find . -type f FILES",
		Files:   []string{"id_rsa", "id_*"},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestExecuteLocateGlobCaseInsensitive(t *testing.T) {
	root := buildTree(t, map[string]string{"my_Password.txt": "x"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command: "find . -type f FILES",
		Files:   []string{"*PASSWORD*"},
	})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExecuteLocateNoPatterns(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "x"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{Command: "find . -type f"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteDump(t *testing.T) {
	root := buildTree(t, map[string]string{
		"keys/id_rsa":  "PRIVATE KEY MATERIAL\n",
		"keys/id_data": "x",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command: `find . -type f FILES -exec cat {} \;`,
		Files:   []string{"id_rsa"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "=== "+filepath.Join(root, "keys", "id_rsa")+" ===", results[0])
	assert.Equal(t, "PRIVATE KEY MATERIAL\n", results[1])
}

func TestExecuteDumpSkipsEmptyFiles(t *testing.T) {
	root := buildTree(t, map[string]string{
		"empty.bak":      "",
		"whitespace.bak": "  \n\t\n",
		"full.bak":       "data\n",
	})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:    `find . -type f -exec cat {} \;`,
		Extensions: []string{"*.bak"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0], "full.bak")
}

func TestExecuteDumpFallsBackToExtensions(t *testing.T) {
	root := buildTree(t, map[string]string{"notes.dump": "content\n"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:    `find . -type f -exec cat {} \;`,
		Extensions: []string{"*.dump"},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestExecuteUnrecognizedCommand(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "secret\n"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:  "locate secrets",
		Keywords: []string{"secret"},
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestExecuteMaxFileSizeCapsContentReads(t *testing.T) {
	root := buildTree(t, map[string]string{
		"small.txt": "secret\n",
		"large.txt": strings.Repeat("secret\n", 1000),
	})
	exec := &Executor{Root: root, MaxFileSize: 64}

	results, err := exec.Execute(ruleset.Section{
		Command:  `grep -rniE "KEYWORDS" .`,
		Keywords: []string{"secret"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "small.txt")
}

func TestExecuteInvalidKeywordPattern(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "secret\n"})
	exec := &Executor{Root: root}

	results, err := exec.Execute(ruleset.Section{
		Command:  `grep -rniE "KEYWORDS" .`,
		Keywords: []string{"(unclosed"},
	})
	assert.Error(t, err)
	assert.Empty(t, results)
}
