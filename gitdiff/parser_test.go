package gitdiff_test

import (
	"strings"
	"testing"

	"github.com/AmKilopa/KlpGIT"
	"github.com/AmKilopa/KlpGIT/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modifiedDiff = `diff --git a/main.go b/main.go
index 1234567..abcdefg 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@ package main
 package main

 func main() {
-	println("hello")
+	println("hello world")
+	println("goodbye")
 }
`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, diff.Files)
	})

	t.Run("modified file numbers both sides", func(t *testing.T) {
		t.Parallel()

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(modifiedDiff))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)

		f := diff.Files[0]
		assert.Equal(t, "main.go", f.OldPath)
		assert.Equal(t, "main.go", f.NewPath)
		assert.Equal(t, klpgit.FileModified, f.Operation)

		require.Len(t, f.Hunks, 1)
		h := f.Hunks[0]
		assert.Equal(t, 1, h.OldStart)
		assert.Equal(t, 5, h.OldCount)
		assert.Equal(t, 1, h.NewStart)
		assert.Equal(t, 6, h.NewCount)
		assert.Equal(t, "package main", h.Section)

		want := []klpgit.Line{
			{Type: klpgit.LineContext, Content: "package main", OldLineNum: 1, NewLineNum: 1},
			{Type: klpgit.LineContext, Content: "", OldLineNum: 2, NewLineNum: 2},
			{Type: klpgit.LineContext, Content: "func main() {", OldLineNum: 3, NewLineNum: 3},
			{Type: klpgit.LineDeleted, Content: "\tprintln(\"hello\")", OldLineNum: 4},
			{Type: klpgit.LineAdded, Content: "\tprintln(\"hello world\")", NewLineNum: 4},
			{Type: klpgit.LineAdded, Content: "\tprintln(\"goodbye\")", NewLineNum: 5},
			{Type: klpgit.LineContext, Content: "}", OldLineNum: 5, NewLineNum: 6},
		}
		assert.Equal(t, want, h.Lines)
	})

	t.Run("added file", func(t *testing.T) {
		t.Parallel()

		input := "diff --git a/new.go b/new.go\n" +
			"new file mode 100644\n" +
			"index 0000000..1234567\n" +
			"--- /dev/null\n" +
			"+++ b/new.go\n" +
			"@@ -0,0 +1,3 @@\n" +
			"+package main\n" +
			"+\n" +
			"+func hello() {}\n"

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		f := diff.Files[0]
		assert.Empty(t, f.OldPath)
		assert.Equal(t, "new.go", f.Path())
		assert.Equal(t, klpgit.FileAdded, f.Operation)

		require.Len(t, f.Hunks, 1)
		for i, line := range f.Hunks[0].Lines {
			assert.Equal(t, klpgit.LineAdded, line.Type)
			assert.Zero(t, line.OldLineNum)
			assert.Equal(t, i+1, line.NewLineNum)
		}
		added, deleted := f.Stats()
		assert.Equal(t, 3, added)
		assert.Zero(t, deleted)
	})

	t.Run("deleted file", func(t *testing.T) {
		t.Parallel()

		input := "diff --git a/old.go b/old.go\n" +
			"deleted file mode 100644\n" +
			"index 1234567..0000000\n" +
			"--- a/old.go\n" +
			"+++ /dev/null\n" +
			"@@ -1,2 +0,0 @@\n" +
			"-package main\n" +
			"-\n"

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		f := diff.Files[0]
		assert.Empty(t, f.NewPath)
		assert.Equal(t, "old.go", f.Path())
		assert.Equal(t, klpgit.FileDeleted, f.Operation)
		for i, line := range f.Hunks[0].Lines {
			assert.Equal(t, klpgit.LineDeleted, line.Type)
			assert.Equal(t, i+1, line.OldLineNum)
			assert.Zero(t, line.NewLineNum)
		}
	})

	t.Run("header only operations", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			input string
			op    klpgit.FileOp
			old   string
			new   string
		}{
			{
				name:  "rename",
				input: "diff --git a/old.go b/new.go\nsimilarity index 100%\nrename from old.go\nrename to new.go\n",
				op:    klpgit.FileRenamed,
				old:   "old.go",
				new:   "new.go",
			},
			{
				name:  "copy",
				input: "diff --git a/original.go b/copy.go\nsimilarity index 100%\ncopy from original.go\ncopy to copy.go\n",
				op:    klpgit.FileCopied,
				old:   "original.go",
				new:   "copy.go",
			},
			{
				name:  "mode change",
				input: "diff --git a/script.sh b/script.sh\nold mode 100644\nnew mode 100755\n",
				op:    klpgit.FileModified,
				old:   "script.sh",
				new:   "script.sh",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				diff, err := gitdiff.NewParser().Parse(strings.NewReader(tt.input))

				require.NoError(t, err)
				require.Len(t, diff.Files, 1)
				f := diff.Files[0]
				assert.Equal(t, tt.op, f.Operation)
				assert.Equal(t, tt.old, f.OldPath)
				assert.Equal(t, tt.new, f.NewPath)
				assert.Empty(t, f.Hunks)
			})
		}
	})

	t.Run("binary file", func(t *testing.T) {
		t.Parallel()

		input := "diff --git a/image.png b/image.png\n" +
			"new file mode 100644\n" +
			"index 0000000..1234567\n" +
			"Binary files /dev/null and b/image.png differ\n"

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		assert.True(t, diff.Files[0].IsBinary)
		assert.Empty(t, diff.Files[0].Hunks)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()

		input := "diff --git a/file.go\n@@ -1,1 +1,1 @@ incomplete header\n"

		diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

		require.Error(t, err)
		assert.Nil(t, diff)
	})
}

func TestParser_Parse_Changes(t *testing.T) {
	t.Parallel()

	input := modifiedDiff +
		"diff --git a/b.go b/b.go\n" +
		"new file mode 100644\n" +
		"index 0000000..1234567\n" +
		"--- /dev/null\n" +
		"+++ b/b.go\n" +
		"@@ -0,0 +1 @@\n" +
		"+content\n"

	diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []klpgit.FileChange{
		{Path: "main.go", Operation: "modified", Added: 2, Removed: 1},
		{Path: "b.go", Operation: "added", Added: 1},
	}, diff.Changes())
}
