package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAndApplyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
	}{
		{"append", "Foo", "FooBar"},
		{"prepend", "world", "hello world"},
		{"delete all", "some content", ""},
		{"from empty", "", "fresh document"},
		{"both empty", "", ""},
		{"multiline", "line one\nline two\nline three", "line one\nline 2\nline three\nline four"},
		{"unicode", "笔记内容 über naïve", "笔记内容已修改 über naïve 🎉"},
		{"large", strings.Repeat("paragraph of text\n", 500), strings.Repeat("paragraph of text\n", 480) + "tail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := Compute(tt.oldText, tt.newText)
			got, ok := Apply(tt.oldText, patch)
			assert.True(t, ok)
			assert.Equal(t, tt.newText, got)
		})
	}
}

func TestApplyMalformedPatch(t *testing.T) {
	_, ok := Apply("base text", "@@ this is not a patch @@")
	assert.False(t, ok)

	_, ok = Apply("base text", "complete garbage")
	assert.False(t, ok)
}

func TestApplyEmptyPatchKeepsText(t *testing.T) {
	// Identical texts never reach Compute in practice, but an empty-effect
	// patch must not corrupt the input.
	// 相同文本实际不会进入 Compute，但空补丁不得破坏输入
	got, ok := Apply("unchanged", Compute("unchanged", "unchanged"))
	assert.True(t, ok)
	assert.Equal(t, "unchanged", got)
}

func TestValidate(t *testing.T) {
	patch := Compute("Foo", "FooBar")
	assert.True(t, Validate("Foo", patch))
	assert.False(t, Validate("Foo", "not a patch"))
}

func TestTextsIdentical(t *testing.T) {
	assert.True(t, TextsIdentical("", ""))
	assert.True(t, TextsIdentical("同一段文本", "同一段文本"))
	assert.False(t, TextsIdentical("a", "a "))
}

func TestGetSummary(t *testing.T) {
	t.Run("pure insertion", func(t *testing.T) {
		s := GetSummary(Compute("Foo", "FooBar"))
		assert.Equal(t, 3, s.Additions)
		assert.Equal(t, 0, s.Deletions)
	})

	t.Run("pure deletion", func(t *testing.T) {
		s := GetSummary(Compute("FooBar", "Foo"))
		assert.Equal(t, 0, s.Additions)
		assert.Equal(t, 3, s.Deletions)
	})

	t.Run("unicode counts runes", func(t *testing.T) {
		s := GetSummary(Compute("笔记", "笔记abc"))
		assert.Equal(t, 3, s.Additions)
	})

	t.Run("malformed patch", func(t *testing.T) {
		assert.Equal(t, Summary{}, GetSummary("@@ broken"))
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.Equal(t, Summary{}, GetSummary(""))
	})
}

func TestGetPreview(t *testing.T) {
	t.Run("prefers insertions", func(t *testing.T) {
		p := GetPreview(Compute("Foo", "Foo added words"), 80)
		assert.Contains(t, p, "added words")
	})

	t.Run("falls back to context on pure deletion", func(t *testing.T) {
		p := GetPreview(Compute("keep this removed part", "keep this"), 80)
		assert.NotEqual(t, PreviewNoChanges, p)
		assert.NotEqual(t, PreviewError, p)
		assert.Contains(t, p, "removed")
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		p := GetPreview(Compute("x", "x one\n\ttwo   three"), 80)
		assert.NotContains(t, p, "\n")
		assert.NotContains(t, p, "  ")
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		p := GetPreview(Compute("", strings.Repeat("word ", 50)), 20)
		assert.True(t, strings.HasSuffix(p, "..."))
		assert.LessOrEqual(t, len([]rune(p)), 23)
	})

	t.Run("empty patch sentinel", func(t *testing.T) {
		assert.Equal(t, PreviewNoChanges, GetPreview("", 80))
	})

	t.Run("malformed patch sentinel, no panic", func(t *testing.T) {
		assert.Equal(t, PreviewError, GetPreview("@@ -x +y @@\n%zz", 80))
		assert.Equal(t, PreviewError, GetPreview("garbage input", 80))
	})
}

func TestEndToEndFooBar(t *testing.T) {
	patch := Compute("Foo", "FooBar")
	s := GetSummary(patch)
	assert.Equal(t, 3, s.Additions)
	assert.Equal(t, 0, s.Deletions)

	restored, ok := Apply("Foo", patch)
	assert.True(t, ok)
	assert.Equal(t, "FooBar", restored)
}
