package masking

import (
	"log/slog"
	"regexp"
	"sort"
)

// CompiledPattern holds a pre-compiled regex pattern with its replacement.
type CompiledPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Description string
}

// patternDef is the source form of a built-in pattern.
type patternDef struct {
	Pattern     string
	Replacement string
	Description string
}

// builtinPatterns cover credential shapes that can appear in upstream error
// bodies, transport errors, or echoed request headers.
var builtinPatterns = map[string]patternDef{
	"bearer_token": {
		Pattern:     `(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`,
		Replacement: "${1}[MASKED_TOKEN]",
		Description: "Authorization bearer tokens",
	},
	"openai_key": {
		Pattern:     `sk-[A-Za-z0-9_\-]{16,}`,
		Replacement: "[MASKED_API_KEY]",
		Description: "OpenAI-style secret keys",
	},
	"auth_header": {
		Pattern:     `(?i)(x-auth-(?:token|client)"?\s*[:=]\s*"?)[^\s",]+`,
		Replacement: "${1}[MASKED_CREDENTIAL]",
		Description: "Order platform auth headers echoed in bodies or dumps",
	},
	"access_token_field": {
		Pattern:     `(?i)("(?:access_token|api_key|client_secret)"\s*:\s*")[^"]*(")`,
		Replacement: "${1}[MASKED]${2}",
		Description: "JSON credential fields",
	},
}

// compileBuiltinPatterns compiles all built-in regex patterns in name order.
// Invalid patterns are logged and skipped.
func compileBuiltinPatterns() []*CompiledPattern {
	names := make([]string, 0, len(builtinPatterns))
	for name := range builtinPatterns {
		names = append(names, name)
	}
	sort.Strings(names)

	compiled := make([]*CompiledPattern, 0, len(names))
	for _, name := range names {
		def := builtinPatterns[name]
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			slog.Error("Failed to compile built-in masking pattern, skipping",
				"pattern", name, "error", err)
			continue
		}
		compiled = append(compiled, &CompiledPattern{
			Name:        name,
			Regex:       re,
			Replacement: def.Replacement,
			Description: def.Description,
		})
	}
	return compiled
}
