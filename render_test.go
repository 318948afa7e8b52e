package klpgit_test

import (
	"encoding/json"
	"testing"

	"github.com/AmKilopa/KlpGIT"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDiff(t *testing.T) {
	t.Parallel()

	t.Run("empty diff", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("")
		assert.Empty(t, got.Lines)
		assert.Zero(t, got.Added)
		assert.Zero(t, got.Removed)
	})

	t.Run("single hunk", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("@@ -1,2 +1,3 @@\n context\n+added\n-removed\n")

		assert.Equal(t, []klpgit.DiffLine{
			{Kind: klpgit.DiffHunk, Text: "@@ -1,2 +1,3 @@"},
			{Kind: klpgit.DiffContext, Number: 1, Text: " context"},
			{Kind: klpgit.DiffAdded, Number: 2, Sign: klpgit.SignAdded, Text: "+added"},
			{Kind: klpgit.DiffRemoved, Sign: klpgit.SignRemoved, Text: "-removed"},
		}, got.Lines)
		assert.Equal(t, 1, got.Added)
		assert.Equal(t, 1, got.Removed)
	})

	t.Run("row kinds on the wire", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("diff --git a/x b/x\n@@ -1 +1 @@\n")
		require.Len(t, got.Lines, 2)

		kinds, err := json.Marshal([]klpgit.DiffLineKind{got.Lines[0].Kind, got.Lines[1].Kind})
		require.NoError(t, err)
		assert.JSONEq(t, `["file-meta","hunk-header"]`, string(kinds))
	})

	t.Run("file headers are meta", func(t *testing.T) {
		t.Parallel()

		diff := "diff --git a/x.go b/x.go\n" +
			"new file mode 100644\n" +
			"index 0000000..e69de29\n" +
			"--- /dev/null\n" +
			"+++ b/x.go\n" +
			"@@ -0,0 +1 @@\n" +
			"+package x\n" +
			"\\ No newline at end of file\n"
		got := klpgit.RenderDiff(diff)

		require.Len(t, got.Lines, 8)
		for _, row := range got.Lines[:5] {
			assert.Equal(t, klpgit.DiffMeta, row.Kind, row.Text)
			assert.Zero(t, row.Number)
		}
		assert.Equal(t, klpgit.DiffHunk, got.Lines[5].Kind)
		assert.Equal(t, 1, got.Lines[6].Number)
		assert.Equal(t, klpgit.DiffMeta, got.Lines[7].Kind)
		assert.Equal(t, 1, got.Added)
		assert.Zero(t, got.Removed)
	})

	t.Run("numbering restarts at each hunk", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("@@ -1 +1 @@\n-a\n+b\n@@ -10,2 +20,2 @@\n c\n+d\n")

		var numbers []int
		for _, row := range got.Lines {
			if row.Number != 0 {
				numbers = append(numbers, row.Number)
			}
		}
		assert.Equal(t, []int{1, 20, 21}, numbers)
	})

	t.Run("garbled hunk header keeps counting", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("@@ -1 +5 @@\n a\n@@ garbled @@\n b\n+c\n")

		require.Len(t, got.Lines, 5)
		assert.Equal(t, klpgit.DiffHunk, got.Lines[2].Kind)
		assert.Zero(t, got.Lines[2].Number)
		assert.Equal(t, 5, got.Lines[1].Number)
		assert.Equal(t, 6, got.Lines[3].Number)
		assert.Equal(t, 7, got.Lines[4].Number)
	})

	t.Run("garbled first header counts from one", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("@@ nope\n x\n")

		require.Len(t, got.Lines, 2)
		assert.Equal(t, klpgit.DiffHunk, got.Lines[0].Kind)
		assert.Equal(t, 1, got.Lines[1].Number)
	})

	t.Run("counts match rows", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("--- a/f\n+++ b/f\n@@ -1,3 +1,3 @@\n-x\n-y\n+z\n q\n")

		var added, removed int
		for _, row := range got.Lines {
			switch row.Kind {
			case klpgit.DiffAdded:
				added++
			case klpgit.DiffRemoved:
				removed++
			}
		}
		assert.Equal(t, 1, got.Added)
		assert.Equal(t, 2, got.Removed)
		assert.Equal(t, added, got.Added)
		assert.Equal(t, removed, got.Removed)
	})

	t.Run("no trailing newline", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, klpgit.RenderDiff("@@ -1 +1 @@\n x").Lines, 2)
	})

	t.Run("blank context row displays placeholder", func(t *testing.T) {
		t.Parallel()

		got := klpgit.RenderDiff("@@ -1,2 +1,2 @@\n\n a\n")

		require.Len(t, got.Lines, 3)
		assert.Equal(t, klpgit.DiffContext, got.Lines[1].Kind)
		assert.Equal(t, 1, got.Lines[1].Number)
		assert.Equal(t, " ", got.Lines[1].Display())
		assert.Equal(t, " a", got.Lines[2].Display())
	})
}
