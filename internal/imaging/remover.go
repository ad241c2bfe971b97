// Package imaging wraps the external background-removal service used by the
// logo tool. The service is an opaque collaborator: one image in, one
// processed image out, potentially tens of seconds per call, no streaming
// and no partial results. Nothing here ever touches cart state.
package imaging

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

// maxResultSize caps how much of the upstream response is read.
const maxResultSize = 20 << 20

var (
	// ErrUnsupportedImage means the payload is not an image.
	ErrUnsupportedImage = errors.New("imaging: unsupported file type, expected an image")

	// ErrUnavailable means the circuit breaker is open and the upstream
	// service is not being called.
	ErrUnavailable = errors.New("imaging: background-removal service unavailable")
)

// Remover sends images to the background-removal endpoint. Calls to the
// upstream are guarded by a circuit breaker, and concurrent requests for an
// identical image share a single upstream call.
type Remover struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	group    singleflight.Group
}

// NewRemover creates a client for the given endpoint. The timeout bounds a
// single upstream call and should be generous; the service routinely takes
// tens of seconds.
func NewRemover(endpoint string, timeout time.Duration) *Remover {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "background-removal",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &Remover{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		breaker:  breaker,
	}
}

// RemoveBackground sends the image upstream and returns the processed PNG.
// The content type must be an image type. Identical images submitted
// concurrently are deduplicated into one upstream call.
func (r *Remover) RemoveBackground(ctx context.Context, image []byte, contentType string) ([]byte, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImage
	}

	digest := sha256.Sum256(image)
	key := hex.EncodeToString(digest[:])

	// The flight's result may be shared with other callers, so it must not
	// die with whichever caller happened to start it. The client timeout
	// still bounds the detached call.
	flightCtx := context.WithoutCancel(ctx)

	result, err, shared := r.group.Do(key, func() (interface{}, error) {
		return r.breaker.Execute(func() ([]byte, error) {
			return r.callUpstream(flightCtx, image, contentType)
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, err
	}

	if shared {
		log.Debug().Str("image_digest", key[:12]).Msg("shared background-removal result with a concurrent request")
	}

	return result.([]byte), nil
}

func (r *Remover) callUpstream(ctx context.Context, image []byte, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("imaging: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "image/png")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imaging: background-removal call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imaging: background-removal returned status %d", resp.StatusCode)
	}

	processed, err := io.ReadAll(io.LimitReader(resp.Body, maxResultSize))
	if err != nil {
		return nil, fmt.Errorf("imaging: failed to read processed image: %w", err)
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("bytes_in", len(image)).
		Int("bytes_out", len(processed)).
		Msg("background removed")

	return processed, nil
}
