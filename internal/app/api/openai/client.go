package openai

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sashabaranov/go-openai"
)

var (
	once      sync.Once
	singleton *openai.Client
)

// GetClient returns the shared chat-completions client.
// OPENAI_API_KEY must be set; serve refuses the dependent routes otherwise.
func GetClient() *openai.Client {
	once.Do(func() {
		token, ok := os.LookupEnv("OPENAI_API_KEY")
		if !ok {
			panic("OPENAI_API_KEY environment variable not set")
		}

		config := openai.DefaultConfig(token)
		config.HTTPClient = NewRetryingHTTPClient()
		singleton = openai.NewClientWithConfig(config)
	})

	return singleton
}

// NewRetryingHTTPClient builds the HTTP client used for all upstream model
// calls. Transcriptions of long visits can take a while, hence the generous
// timeout.
func NewRetryingHTTPClient() *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	client := retryClient.StandardClient()
	client.Timeout = 5 * time.Minute
	return client
}

// BearerTransport adds the Authorization header to every request.
type BearerTransport struct {
	BaseTransport http.RoundTripper
	Token         string
}

// RoundTrip implements the RoundTripper interface to modify the request.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid side effects
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+t.Token)
	return t.BaseTransport.RoundTrip(reqClone)
}

// NewBearerHTTPClient returns a retrying client that authenticates with the
// given token.
func NewBearerHTTPClient(token string) *http.Client {
	client := NewRetryingHTTPClient()
	client.Transport = &BearerTransport{
		BaseTransport: client.Transport,
		Token:         token,
	}
	return client
}
