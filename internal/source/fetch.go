package source

import (
	"bytes"
	"context"
	"image"
	"time"

	"github.com/mapgrid/tilefetch/pkg/metrics"
)

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeEmpty
	outcomeNotFound
	outcomeTransient
)

// fetchOutcome is the result of the retry loop for one location.
type fetchOutcome struct {
	kind outcomeKind
	data []byte
	err  error
}

// fetchLocation runs the bounded-retry loop for one location. The total
// request timeout is sliced evenly across attempts. Only transient
// failures and missing data are retried; not-found, no-content and
// client errors end the loop immediately.
func (s *Source) fetchLocation(ctx context.Context, location string) fetchOutcome {
	attemptTimeout := s.timeout / time.Duration(s.retryCount)

	var lastErr error
	for attempt := 1; attempt <= s.retryCount; attempt++ {
		if attempt > 1 {
			metrics.FetchRetries.Inc()
		}

		actx, cancel := context.WithTimeout(ctx, attemptTimeout)
		start := time.Now()
		data, status, err := s.transport.Fetch(actx, location)
		cancel()

		metrics.UpstreamFetches.Inc()
		metrics.UpstreamLatency.Observe(time.Since(start).Seconds())

		switch status {
		case StatusOK:
			if len(data) > 0 {
				return fetchOutcome{kind: outcomeSuccess, data: data}
			}
			lastErr = errEmptyBody
		case StatusNoContent:
			return fetchOutcome{kind: outcomeEmpty}
		case StatusNotFound:
			return fetchOutcome{kind: outcomeNotFound, err: err}
		case StatusClientError:
			return fetchOutcome{kind: outcomeTransient, err: err}
		default:
			lastErr = err
		}

		s.log.Debug("tile fetch attempt failed",
			"location", location, "attempt", attempt, "error", lastErr)
	}

	return fetchOutcome{kind: outcomeTransient, err: lastErr}
}

// imageFromOutcome decodes a successful outcome into an image. Anything
// else, including bytes that do not decode, yields nil so the slot is
// skipped during compositing.
func (s *Source) imageFromOutcome(out fetchOutcome) image.Image {
	if out.kind != outcomeSuccess {
		return nil
	}
	img, err := decode(out.data)
	if err != nil {
		s.log.Warn("discarding undecodable tile layer", "error", err)
		return nil
	}
	return img
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
