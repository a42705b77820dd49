package domain

import "errors"

var (
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrMessageRequired  = errors.New("message is required")
	ErrGenerationFailed = errors.New("failed to generate response")
)

// Chat strategies selectable by configuration.
const (
	ChatStrategyRules = "rules"
	ChatStrategyGenAI = "genai"
)
