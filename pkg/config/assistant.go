package config

import "github.com/thundertactical/thunder-ai-backend/pkg/intent"

// AssistantConfig shapes the persona used in the completion system prompt.
type AssistantConfig struct {
	StoreName string `yaml:"store_name,omitempty"`
	Persona   string `yaml:"persona,omitempty"`
}

// DefaultAssistantConfig returns the storefront persona.
func DefaultAssistantConfig() *AssistantConfig {
	return &AssistantConfig{
		StoreName: "Thunder Tactical / Thunder Guns",
		Persona:   "Answer questions clearly about products, policies, shipping times, etc.",
	}
}

// IntentConfig selects the order-inquiry detection strategy.
type IntentConfig struct {
	Strategy string   `yaml:"strategy,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// DefaultIntentConfig returns the keyword strategy with the stock keyword list.
func DefaultIntentConfig() *IntentConfig {
	keywords := make([]string, len(intent.DefaultKeywords))
	copy(keywords, intent.DefaultKeywords)
	return &IntentConfig{
		Strategy: intent.StrategyKeyword,
		Keywords: keywords,
	}
}
