package diff

import (
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证补丁引擎的往返与统计定律
func TestProperty_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("apply(a, compute(a, b)) == b", prop.ForAll(
		func(a, b string) bool {
			got, ok := Apply(a, Compute(a, b))
			return ok && got == b
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("identical texts produce an empty-effect patch", prop.ForAll(
		func(a string) bool {
			got, ok := Apply(a, Compute(a, a))
			return ok && got == a
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestProperty_Summary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// 纯追加：无删除，且追加数等于新增文本长度
	properties.Property("append-only patches report no deletions", prop.ForAll(
		func(base, suffix string) bool {
			if suffix == "" {
				return true
			}
			s := GetSummary(Compute(base, base+suffix))
			return s.Deletions == 0 && s.Additions == utf8.RuneCountInString(suffix)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// 纯删除：无新增
	properties.Property("delete-only patches report no additions", prop.ForAll(
		func(base, suffix string) bool {
			if suffix == "" {
				return true
			}
			s := GetSummary(Compute(base+suffix, base))
			return s.Additions == 0 && s.Deletions == utf8.RuneCountInString(suffix)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_PreviewNeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("preview of arbitrary input returns a defined string", prop.ForAll(
		func(input string) bool {
			p := GetPreview(input, DefaultPreviewLength)
			return p != ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
