// Package intent decides whether a chat message is a direct order inquiry that
// can be answered from the order record alone, without the language model.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thundertactical/thunder-ai-backend/pkg/extract"
)

// Strategy names accepted in configuration.
const (
	StrategyKeyword = "keyword"
	StrategyDigits  = "digits"
)

// DefaultKeywords are the order-related words the keyword strategy looks for.
var DefaultKeywords = []string{"order", "tracking", "shipment", "shipping", "status"}

// Detector is the pluggable order-inquiry heuristic.
type Detector interface {
	// IsOrderInquiry reports whether message, with the identifiers already
	// extracted from it, should take the templated order-status path.
	IsOrderInquiry(message string, ids extract.Identifiers) bool

	// Name returns the strategy name for logging.
	Name() string
}

// KeywordDetector requires an order number and at least one keyword.
// Keywords match case-insensitively anywhere in the message ("orders", "reorder").
type KeywordDetector struct {
	pattern *regexp.Regexp
}

// NewKeywordDetector compiles the keyword alternation. At least one non-blank
// keyword is required.
func NewKeywordDetector(keywords []string) (*KeywordDetector, error) {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("keyword detector needs at least one keyword")
	}
	return &KeywordDetector{
		pattern: regexp.MustCompile(`(?i)` + strings.Join(quoted, "|")),
	}, nil
}

func (d *KeywordDetector) IsOrderInquiry(message string, ids extract.Identifiers) bool {
	return ids.OrderNumber != "" && d.pattern.MatchString(message)
}

func (d *KeywordDetector) Name() string { return StrategyKeyword }

// DigitRunDetector treats any extracted order number as an order inquiry.
type DigitRunDetector struct{}

func (DigitRunDetector) IsOrderInquiry(_ string, ids extract.Identifiers) bool {
	return ids.OrderNumber != ""
}

func (DigitRunDetector) Name() string { return StrategyDigits }

// New builds the detector for a configured strategy name.
func New(strategy string, keywords []string) (Detector, error) {
	switch strategy {
	case StrategyKeyword, "":
		if len(keywords) == 0 {
			keywords = DefaultKeywords
		}
		return NewKeywordDetector(keywords)
	case StrategyDigits:
		return DigitRunDetector{}, nil
	default:
		return nil, fmt.Errorf("unknown intent strategy %q", strategy)
	}
}

// IsValidStrategy reports whether name is a known strategy.
func IsValidStrategy(name string) bool {
	return name == StrategyKeyword || name == StrategyDigits
}
