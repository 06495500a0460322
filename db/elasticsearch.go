package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Bulk indexer tuning for name list imports
const (
	NUM_WORKERS    = 2
	FLUSH_BYTES    = 1 << 20
	FLUSH_INTERVAL = time.Second * 5
)

const MAX_PING_ELAPSED = time.Second * 30

type EsConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// https with certificate verification
	Secure bool
}

func (c EsConfig) address() string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// Delay before retry number attempt. Each call walks its own backoff,
// so concurrent requests share no state.
func retryDelay(attempt int) time.Duration {
	b := backoff.NewExponentialBackOff()
	delay := b.NextBackOff()
	for i := 1; i < attempt; i++ {
		delay = b.NextBackOff()
	}
	return delay
}

// Client that retries throttled and unavailable responses with exponential backoff.
// The cluster must answer a ping within MAX_PING_ELAPSED.
func NewConnectionEs(config EsConfig) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{config.address()},
		Username:  config.Username,
		Password:  config.Password,
		Transport: &http.Transport{
			MaxIdleConns:          10,
			ResponseHeaderTimeout: time.Second * 2,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !config.Secure,
			},
		},
		RetryOnStatus: []int{http.StatusTooManyRequests, 502, 503, 504},
		RetryBackoff:  retryDelay,
		MaxRetries:    5,
	})
	if err != nil {
		return nil, err
	}

	ping := backoff.NewExponentialBackOff()
	ping.MaxElapsedTime = MAX_PING_ELAPSED
	err = backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), CONNECT_TIMEOUT)
		defer cancel()

		response, err := es.Info(es.Info.WithContext(ctx))
		if err != nil {
			return err
		}
		defer response.Body.Close()
		if response.IsError() {
			return fmt.Errorf("elasticsearch ping: %s", response.Status())
		}
		return nil
	}, ping)
	if err != nil {
		return nil, err
	}
	zap.L().Info("elasticsearch connected", zap.String("address", config.address()))
	return es, nil
}

// Wraps the body of a "query" clause
func ConstructQuery(q string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(`{"query": {%s}}`, q))
}
