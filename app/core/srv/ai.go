package srv

import (
	"github.com/jayline-services/assist/pkg/ai"
	"github.com/jayline-services/assist/pkg/ai/openai"
)

type AIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

// AIDriver is everything the logic layer needs from the model provider.
type AIDriver interface {
	ai.Embedder
	ai.Generator
}

type AI struct {
	driver AIDriver
}

func SetupAI(cfg AIConfig) *AI {
	return &AI{
		driver: openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
		}),
	}
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai = SetupAI(cfg)
	}
}
