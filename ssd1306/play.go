package ssd1306

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// FPS returns the frame interval for a rate in frames per second. Rates
// below 1 are treated as 1.
func FPS(rate int) time.Duration {
	if rate < 1 {
		rate = 1
	}
	return time.Second / time.Duration(rate)
}

// Play shows frames in order, one every interval, starting immediately.
// Each frame is a page buffer of the display's size. With loop set it
// starts over after the last frame until ctx is done; otherwise it returns
// nil once the last frame has been shown for one interval.
//
// Only the pages that differ from the previous frame are sent.
func (d *Dev) Play(ctx context.Context, frames [][]byte, interval time.Duration, loop bool) error {
	if d.halted {
		return errHalted
	}
	if len(frames) == 0 {
		return errors.New("ssd1306: no frames to play")
	}
	if interval <= 0 {
		return errors.New("ssd1306: interval must be positive")
	}
	for i, f := range frames {
		if len(f) != len(d.buffer) {
			return fmt.Errorf("ssd1306: frame %d: %w", i, errBufSize)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; ; {
		if err := d.update(frames[i]); err != nil {
			return fmt.Errorf("ssd1306: frame %d: %w", i, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		i++
		if i == len(frames) {
			if !loop {
				return nil
			}
			i = 0
		}
	}
}
