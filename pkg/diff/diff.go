// Package diff implements the text patch engine for note change history
// Package diff 实现笔记变更历史的文本补丁引擎
package diff

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// PreviewNoChanges is returned when a patch carries no textual content
	// PreviewNoChanges 补丁无文本内容时返回
	PreviewNoChanges = "No text changes"
	// PreviewError is returned when a patch cannot be parsed
	// PreviewError 补丁无法解析时返回
	PreviewError = "Error generating preview"
	// DefaultPreviewLength 默认预览长度
	DefaultPreviewLength = 80
)

// Summary holds the inserted/deleted character counts of a patch
// Summary 保存补丁的插入/删除字符数
type Summary struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// String formats a summary as "+N -M"
// String 将摘要格式化为 "+N -M"
func (s Summary) String() string {
	return "+" + strconv.Itoa(s.Additions) + " -" + strconv.Itoa(s.Deletions)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Compute produces a serialized patch transforming oldText into newText.
// A semantic cleanup pass is applied so previews stay readable instead of
// degrading into character-level fragments.
// Compute 生成将 oldText 转换为 newText 的序列化补丁
// 应用语义清理，避免预览退化成字符级碎片
func Compute(oldText, newText string) (patchText string) {
	defer func() {
		if r := recover(); r != nil {
			patchText = ""
		}
	}()

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(oldText, diffs)
	return dmp.PatchToText(patches)
}

// Apply applies a previously computed patch to text. ok is false when the
// patch cannot be parsed or any hunk fails to apply; callers must fall back
// to a stored snapshot instead of trusting a partial result.
// Apply 将补丁应用到文本，解析失败或任一 hunk 应用失败时 ok 为 false
// 调用方必须回退到已存储的快照，不可信任部分结果
func Apply(text, patchText string) (patched string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			patched, ok = "", false
		}
	}()

	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return "", false
	}

	patched, results := dmp.PatchApply(patches, text)
	for _, applied := range results {
		if !applied {
			return "", false
		}
	}
	return patched, true
}

// Validate reports whether patchText can be fully applied to text.
// Validate 判断补丁是否可以完整应用到文本
func Validate(text, patchText string) bool {
	_, ok := Apply(text, patchText)
	return ok
}

// TextsIdentical reports exact equality. Used as the gate for whether an
// edit produces a change record at all.
// TextsIdentical 判断两个文本是否完全一致，作为是否产生变更记录的闸门
func TextsIdentical(a, b string) bool {
	return a == b
}

// GetSummary counts inserted and deleted characters across all hunks.
// Malformed input yields a zero summary, never an error.
// GetSummary 统计补丁所有 hunk 的插入/删除字符数
// 畸形输入返回零值，从不报错
func GetSummary(patchText string) Summary {
	hunks, err := parsePatchText(patchText)
	if err != nil {
		return Summary{}
	}

	var s Summary
	for _, h := range hunks {
		for _, d := range h.diffs {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				s.Additions += utf8.RuneCountInString(d.Text)
			case diffmatchpatch.DiffDelete:
				s.Deletions += utf8.RuneCountInString(d.Text)
			}
		}
	}
	return s
}

// GetPreview builds a single-line excerpt of a patch. Inserted text is
// preferred; a pure deletion falls back to the context and deleted text of
// the first hunk. Whitespace is collapsed and the result truncated with an
// ellipsis marker at maxLength. Never panics.
// GetPreview 生成补丁的单行预览摘录，优先展示插入文本
// 纯删除时回退到第一个 hunk 的上下文与删除文本
// 空白折叠，超过 maxLength 截断并追加省略号，从不 panic
func GetPreview(patchText string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}

	hunks, err := parsePatchText(patchText)
	if err != nil {
		return PreviewError
	}

	var b strings.Builder
	for _, h := range hunks {
		for _, d := range h.diffs {
			if d.Type == diffmatchpatch.DiffInsert {
				b.WriteString(d.Text)
			}
		}
	}

	if b.Len() == 0 && len(hunks) > 0 {
		// 纯删除：展示第一个 hunk 的上下文与被删除内容
		for _, d := range hunks[0].diffs {
			if d.Type == diffmatchpatch.DiffEqual || d.Type == diffmatchpatch.DiffDelete {
				b.WriteString(d.Text)
			}
		}
	}

	preview := strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
	if preview == "" {
		return PreviewNoChanges
	}

	runes := []rune(preview)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return preview
}

// hunk is one localized change region of a serialized patch
// hunk 序列化补丁中的一个局部变更区域
type hunk struct {
	diffs []diffmatchpatch.Diff
}

// parsePatchText reads the diff-match-patch wire format directly. The
// library keeps Patch.diffs unexported, so summary/preview work from the
// serialized form: "@@ -l,s +l,s @@" headers followed by "+"/"-"/" " lines
// with query-escaped text (space kept literal, "+" escaped to %2B).
// parsePatchText 直接解析 diff-match-patch 的序列化格式
// 库未导出 Patch.diffs，摘要/预览基于序列化文本解析
func parsePatchText(patchText string) ([]hunk, error) {
	if patchText == "" {
		return nil, nil
	}

	// Delegate structural validation to the library so malformed input is
	// rejected exactly the way Apply rejects it.
	// 结构校验交给库本身，保证与 Apply 的拒绝行为一致
	dmp := diffmatchpatch.New()
	if _, err := dmp.PatchFromText(patchText); err != nil {
		return nil, err
	}

	var hunks []hunk
	var cur *hunk
	for _, line := range strings.Split(patchText, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@@") {
			hunks = append(hunks, hunk{})
			cur = &hunks[len(hunks)-1]
			continue
		}
		if cur == nil {
			continue
		}

		text, err := url.QueryUnescape(line[1:])
		if err != nil {
			return nil, err
		}
		switch line[0] {
		case '+':
			cur.diffs = append(cur.diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: text})
		case '-':
			cur.diffs = append(cur.diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: text})
		case ' ':
			cur.diffs = append(cur.diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: text})
		}
	}
	return hunks, nil
}
