package source

import (
	"context"
	"image"
	"sync"
	"time"
)

// fanOut fetches every location concurrently and returns the decoded
// images in resolver order, using an indexed slot per location so
// completion order never reorders layers. Slots of failed, undecodable
// or late fetches stay nil. The wait is bounded by the full request
// timeout; tasks still running at the deadline keep going but their
// results are dropped once the slots are marked abandoned.
//
// The second return reports whether the fan-out completed: every slot
// filled and the deadline not reached. An incomplete result is still
// composited but must never be cached.
func (s *Source) fanOut(ctx context.Context, locations []string) ([]image.Image, bool) {
	slots := make([]image.Image, len(locations))

	var (
		mu        sync.Mutex
		abandoned bool
		wg        sync.WaitGroup
	)

	for i, location := range locations {
		wg.Add(1)
		go func(i int, location string) {
			defer wg.Done()

			img := s.imageFromOutcome(s.fetchLocation(ctx, location))
			if img == nil {
				return
			}

			mu.Lock()
			if !abandoned {
				slots[i] = img
			}
			mu.Unlock()
		}(i, location)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timedOut := false
	select {
	case <-done:
	case <-time.After(s.timeout):
		timedOut = true
		s.log.Warn("tile fan-out deadline reached, compositing partial result",
			"locations", len(locations))
	}

	mu.Lock()
	abandoned = true
	result := make([]image.Image, len(slots))
	copy(result, slots)
	mu.Unlock()

	complete := !timedOut
	for _, img := range result {
		if img == nil {
			complete = false
			break
		}
	}

	return result, complete
}
