package diarize

import (
	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/api/provider"
	"clinic-scribe/internal/config"
)

func init() {
	provider.Register("openai", func(cfg provider.ProviderConfig) (api.Transcriber, error) {
		apiKey, err := config.RequireOpenAIKey()
		if err != nil {
			return nil, err
		}

		opts := []Option{}
		if modelName := cfg.Settings["model"]; modelName != "" {
			opts = append(opts, WithModel(modelName))
		}
		if baseURL := cfg.Settings["base_url"]; baseURL != "" {
			opts = append(opts, WithBaseURL(baseURL))
		}
		return NewTranscriber(apiKey, opts...), nil
	})
}
