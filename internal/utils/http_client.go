package utils

import (
	"time"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10*time.Second, log)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// A positive timeout bounds every request; zero leaves requests bounded by
// their context only. resty's internal diagnostics are routed into log,
// which may be nil. Responses are logged at debug level through the logger
// attached to the request context, if any.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(timeout time.Duration, log *logger.Logger) *HTTPClient {
	if log == nil {
		log = logger.Nop()
	}
	client := resty.New().SetLogger(&restyLogger{log: log})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.FromContext(resp.Request.Context()).Debug().
			Int("status", resp.StatusCode()).
			Int("bytes", len(resp.Body())).
			Msg("response received")
		return nil
	})
	return &HTTPClient{Client: client}
}

// restyLogger adapts *logger.Logger to the resty.Logger interface.
type restyLogger struct {
	log *logger.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Msgf(format, v...)
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Msgf(format, v...)
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Msgf(format, v...)
}

var _ resty.Logger = (*restyLogger)(nil)
