package template

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stevear22/FreeField/internal/taxonomy"
)

// builtin is one template function: a minimum argument count and the
// implementation. Dispatch failures of any kind resolve to the empty
// string so one bad token degrades only its own substitution.
type builtin struct {
	minArgs int
	fn      func(ctx *Context, args []string) string
}

var builtins = map[string]builtin{
	"COORDS":        {0, fnCoords},
	"FALLBACK":      {2, fnFallback},
	"IF_EMPTY":      {2, fnIfEmpty},
	"IF_NOT_EMPTY":  {2, fnIfNotEmpty},
	"IF_EQUAL":      {3, fnIfEqual},
	"IF_NOT_EQUAL":  {3, fnIfNotEqual},
	"IF_LESS_THAN":  {3, cmpFn(func(a, b float64) bool { return a < b })},
	"IF_LESS_OR_EQUAL": {3, cmpFn(func(a, b float64) bool { return a <= b })},
	"IF_GREATER_THAN":  {3, cmpFn(func(a, b float64) bool { return a > b })},
	"IF_GREATER_OR_EQUAL": {3, cmpFn(func(a, b float64) bool { return a >= b })},
	"I18N":      {1, fnI18N},
	"LAT":       {0, fnLat},
	"LNG":       {0, fnLng},
	"LENGTH":    {1, fnLength},
	"LOWERCASE": {1, fnLowercase},
	"UPPERCASE": {1, fnUppercase},
	"NAVURL":    {0, fnNavURL},
	"OBJECTIVE": {0, fnObjective},
	"REWARD":    {0, fnReward},
	"OBJECTIVE_ICON": {0, iconFn(func(ctx *Context) taxonomy.Instance { return ctx.Objective }, taxonomy.ScopeObjective)},
	"REWARD_ICON":    {0, iconFn(func(ctx *Context) taxonomy.Instance { return ctx.Reward }, taxonomy.ScopeReward)},
	"OBJECTIVE_PARAMETER": {1, paramFn(func(ctx *Context) taxonomy.Instance { return ctx.Objective })},
	"REWARD_PARAMETER":    {1, paramFn(func(ctx *Context) taxonomy.Instance { return ctx.Reward })},
	"OBJECTIVE_PARAMETER_COUNT": {1, paramCountFn(func(ctx *Context) taxonomy.Instance { return ctx.Objective })},
	"REWARD_PARAMETER_COUNT":    {1, paramCountFn(func(ctx *Context) taxonomy.Instance { return ctx.Reward })},
	"PAD_LEFT":  {2, padFn(true)},
	"PAD_RIGHT": {2, padFn(false)},
	"POI":       {0, fnPOI},
	"REPORTER":  {0, fnReporter},
	"SITEURL":   {0, fnSiteURL},
	"SUBSTRING": {2, fnSubstring},
	"TIME":      {1, fnTime},
}

// dispatch resolves one tag. Unknown names and short argument lists yield
// the empty string, never an error.
func dispatch(name string, args []string, ctx *Context) string {
	b, ok := builtins[strings.ToUpper(name)]
	if !ok || len(args) < b.minArgs {
		return ""
	}
	return b.fn(ctx, args)
}

// parseFloat converts a numeric argument, defaulting to 0 on failure.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt converts an integer argument, defaulting to 0 on failure.
func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func fnCoords(ctx *Context, args []string) string {
	prec := -1
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		prec = parseInt(args[0])
	}
	return strconv.FormatFloat(ctx.Latitude, 'f', prec, 64) + "," +
		strconv.FormatFloat(ctx.Longitude, 'f', prec, 64)
}

func fnFallback(_ *Context, args []string) string {
	if args[0] != "" {
		return args[0]
	}
	return args[1]
}

func fnIfEmpty(_ *Context, args []string) string {
	if args[0] == "" {
		return args[1]
	}
	return arg(args, 2)
}

func fnIfNotEmpty(_ *Context, args []string) string {
	if args[0] != "" {
		return args[1]
	}
	return arg(args, 2)
}

func fnIfEqual(_ *Context, args []string) string {
	if args[0] == args[1] {
		return args[2]
	}
	return arg(args, 3)
}

func fnIfNotEqual(_ *Context, args []string) string {
	if args[0] != args[1] {
		return args[2]
	}
	return arg(args, 3)
}

// cmpFn builds the numeric comparison branch functions. Comparison is
// floating-point, not lexicographic, so IF_GREATER_THAN(10,9,...) holds.
func cmpFn(cmp func(a, b float64) bool) func(*Context, []string) string {
	return func(_ *Context, args []string) string {
		if cmp(parseFloat(args[0]), parseFloat(args[1])) {
			return args[2]
		}
		return arg(args, 3)
	}
}

func fnI18N(ctx *Context, args []string) string {
	if ctx.Localizer == nil {
		return ""
	}
	return ctx.Localizer.ResolveArgs(args[0], ctx.Language, args[1:]...)
}

func fnLat(ctx *Context, _ []string) string {
	return strconv.FormatFloat(ctx.Latitude, 'f', -1, 64)
}

func fnLng(ctx *Context, _ []string) string {
	return strconv.FormatFloat(ctx.Longitude, 'f', -1, 64)
}

func fnLength(_ *Context, args []string) string {
	return strconv.Itoa(utf8.RuneCountInString(args[0]))
}

func fnLowercase(_ *Context, args []string) string {
	return strings.ToLower(args[0])
}

func fnUppercase(_ *Context, args []string) string {
	return strings.ToUpper(args[0])
}

// fnNavURL builds a navigation link from the named provider template,
// falling back to the configured default provider.
func fnNavURL(ctx *Context, args []string) string {
	name := strings.TrimSpace(arg(args, 0))
	tmpl, ok := ctx.NavProviders[name]
	if !ok {
		tmpl, ok = ctx.NavProviders[ctx.NavProvider]
		if !ok {
			return ""
		}
	}
	r := strings.NewReplacer(
		"{lat}", strconv.FormatFloat(ctx.Latitude, 'f', -1, 64),
		"{lon}", strconv.FormatFloat(ctx.Longitude, 'f', -1, 64),
		"{name}", url.QueryEscape(ctx.POIName),
	)
	return r.Replace(tmpl)
}

func fnObjective(ctx *Context, _ []string) string {
	if ctx.Taxonomy == nil {
		return ""
	}
	return ctx.Taxonomy.ObjectiveText(ctx.Objective.Kind, ctx.Objective.Params, ctx.Language)
}

func fnReward(ctx *Context, _ []string) string {
	if ctx.Taxonomy == nil {
		return ""
	}
	return ctx.Taxonomy.RewardText(ctx.Reward.Kind, ctx.Reward.Params, ctx.Language)
}

// iconFn resolves an icon URL for the instance's label, walking the kind
// and then its categories most-specific-first until the theme serves one.
func iconFn(pick func(*Context) taxonomy.Instance, scope taxonomy.Scope) func(*Context, []string) string {
	return func(ctx *Context, args []string) string {
		if ctx.Theme == nil {
			return ""
		}
		format := strings.TrimSpace(arg(args, 0))
		variant := strings.TrimSpace(arg(args, 1))
		inst := pick(ctx)
		labels := []string{inst.Kind}
		if def, ok := taxonomy.Lookup(scope)[inst.Kind]; ok {
			labels = append(labels, def.Categories...)
		}
		for _, label := range labels {
			var u string
			var ok bool
			if format == "raster" {
				u, ok = ctx.Theme.RasterURL(label, variant)
			} else {
				u, ok = ctx.Theme.IconURL(label, variant)
			}
			if ok {
				return u
			}
		}
		return ""
	}
}

// paramFn returns the raw value of one instance parameter: positional
// element for indexed array access (1-based), comma-joined otherwise.
func paramFn(pick func(*Context) taxonomy.Instance) func(*Context, []string) string {
	return func(ctx *Context, args []string) string {
		value, ok := pick(ctx).Params[strings.TrimSpace(args[0])]
		if !ok {
			return ""
		}
		elems, isArray := rawElements(value)
		if !isArray {
			return rawScalar(value)
		}
		if len(args) > 1 {
			idx := parseInt(args[1])
			if idx < 1 || idx > len(elems) {
				return ""
			}
			return elems[idx-1]
		}
		return strings.Join(elems, ",")
	}
}

func paramCountFn(pick func(*Context) taxonomy.Instance) func(*Context, []string) string {
	return func(ctx *Context, args []string) string {
		value, ok := pick(ctx).Params[strings.TrimSpace(args[0])]
		if !ok {
			return "0"
		}
		if elems, isArray := rawElements(value); isArray {
			return strconv.Itoa(len(elems))
		}
		return "1"
	}
}

func rawScalar(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func rawElements(v any) ([]string, bool) {
	switch s := v.(type) {
	case []int:
		out := make([]string, len(s))
		for i, n := range s {
			out[i] = strconv.Itoa(n)
		}
		return out, true
	case []string:
		return s, true
	case []any:
		out := make([]string, len(s))
		for i, e := range s {
			out[i] = rawScalar(e)
		}
		return out, true
	}
	return nil, false
}

// padFn pads to a rune length, repeating the pad string and truncating the
// final repetition. Default pad is a single space.
func padFn(left bool) func(*Context, []string) string {
	return func(_ *Context, args []string) string {
		s := args[0]
		target := parseInt(args[1])
		pad := arg(args, 2)
		if pad == "" {
			pad = " "
		}
		have := utf8.RuneCountInString(s)
		if target <= have {
			return s
		}
		need := target - have
		padded := strings.Repeat(pad, (need+utf8.RuneCountInString(pad)-1)/utf8.RuneCountInString(pad))
		padded = string([]rune(padded)[:need])
		if left {
			return padded + s
		}
		return s + padded
	}
}

func fnPOI(ctx *Context, _ []string) string {
	return ctx.POIName
}

func fnReporter(ctx *Context, _ []string) string {
	return ctx.Reporter
}

func fnSiteURL(ctx *Context, _ []string) string {
	return ctx.SiteURL
}

func fnSubstring(_ *Context, args []string) string {
	r := []rune(args[0])
	start := parseInt(args[1])
	if start < 0 {
		start = len(r) + start
	}
	if start < 0 || start > len(r) {
		return ""
	}
	end := len(r)
	if len(args) > 2 {
		length := parseInt(args[2])
		if length < 0 {
			return ""
		}
		if start+length < end {
			end = start + length
		}
	}
	if start >= end {
		return ""
	}
	return string(r[start:end])
}

// fnTime formats the event's fixed report timestamp with a Go reference
// layout, e.g. <%TIME(15:04)%>.
func fnTime(ctx *Context, args []string) string {
	return ctx.ReportedAt.Format(args[0])
}
