package whisper_server

import (
	"errors"

	"clinic-scribe/internal/app/api"
	"clinic-scribe/internal/app/api/provider"
)

func init() {
	provider.Register("whisper_server", func(cfg provider.ProviderConfig) (api.Transcriber, error) {
		baseURL := cfg.Settings["base_url"]
		if baseURL == "" {
			return nil, errors.New("whisper_server provider requires settings.base_url")
		}
		return NewProvider(baseURL, nil)
	})
}
