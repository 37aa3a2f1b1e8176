// Package filter selects medias with expr-lang expressions such as
//
//	Type == "Video" and Duration > 60 and hasAsset("HdMp4VideoFile")
//
// Expressions are type checked against the media environment when compiled,
// so a typo in a field name fails early instead of silently matching nothing.
package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/wistia/wistia"
)

// DefaultCacheSize is the number of compiled expressions kept by Compile.
const DefaultCacheSize = 64

// Filter is a compiled media filter. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	compiler   *Compiler
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// Compiler turns expressions into filters.
type Compiler struct {
	helperFuncs map[string]any
	cache       *lruCache[*Filter]
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helperFuncs: make(map[string]any, 16),
	}
	addHelperFunctions(c.helperFuncs)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewCompiler(WithCache(DefaultCacheSize))

// Compile compiles expression with the shared, cached compiler.
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against a zero media so field and helper types are checked.
	env := c.environment(wistia.Media{})
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, newCompilationError(expression, err)
	}

	f := &Filter{
		expression: expression,
		program:    program,
		compiler:   c,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Evaluate runs the filter against a media.
func (f *Filter) Evaluate(media wistia.Media) (bool, error) {
	result, err := expr.Run(f.program, f.compiler.environment(media))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MediaID:    media.HashedID,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Match reports whether media satisfies the filter. Evaluation errors count
// as no match.
func (f *Filter) Match(media wistia.Media) bool {
	ok, err := f.Evaluate(media)
	return err == nil && ok
}

// Apply returns the medias matched by f, in their original order. A nil
// filter matches everything.
func Apply(f *Filter, medias []wistia.Media) []wistia.Media {
	if f == nil {
		return medias
	}

	var out []wistia.Media
	for _, m := range medias {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// environment builds the evaluation environment for one media
func (c *Compiler) environment(media wistia.Media) map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+16)
	maps.Copy(env, c.helperFuncs)

	env["Media"] = media
	env["hasAsset"] = createHasAssetFunc(media.Assets)

	env["Name"] = media.Name
	env["HashedID"] = media.HashedID
	env["Type"] = media.Type
	env["Description"] = media.Description
	env["Status"] = media.Status
	env["Duration"] = derefOr(media.Duration, 0)
	env["Section"] = derefOr(media.Section, "")
	env["Created"] = derefOr(media.Created, time.Time{})
	env["Updated"] = derefOr(media.Updated, time.Time{})
	env["AssetCount"] = len(media.Assets)
	env["Project"] = ""
	if media.Project != nil {
		env["Project"] = media.Project.Name
	}

	return env
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers, case-insensitive. contains, startsWith and endsWith
	// are expr operators and cannot be used as function names.
	env["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

func createHasAssetFunc(assets []wistia.Asset) func(string) bool {
	kinds := make([]string, len(assets))
	for i, a := range assets {
		kinds[i] = strings.ToLower(string(a.Type))
	}
	return func(kind string) bool {
		return slices.Contains(kinds, strings.ToLower(kind))
	}
}

func derefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
