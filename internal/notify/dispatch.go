// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// ChannelResult summarizes the dispatch outcome for one channel.
// Err nil means the channel delivered; non-nil means it exhausted its
// attempts and the value is the last failure.
type ChannelResult struct {
	Channel  string
	Attempts int
	Err      error
}

// Delivered reports whether the channel succeeded.
func (r ChannelResult) Delivered() bool { return r.Err == nil }

// Dispatch sends papers through each channel in order, retrying each
// channel up to maxAttempts times. Channels are independent: one
// channel exhausting its attempts never blocks or fails the others,
// and Dispatch never returns channel failures as errors — they are
// logged to w and reported in the per-channel results.
//
// An empty paper set is a no-op: no channel is invoked and the result
// list is empty, which is success, trivially.
func Dispatch(ctx context.Context, channels []Channel, papers []types.Paper, maxAttempts int, w io.Writer) []ChannelResult {
	if len(papers) == 0 {
		return nil
	}

	var results []ChannelResult
	for _, ch := range channels {
		attempt := 0
		attempts, err := Retry(maxAttempts, func() error {
			attempt++
			deliverErr := ch.Deliver(ctx, papers)
			if deliverErr != nil {
				fmt.Fprintf(w, "warning: %s delivery attempt %d failed: %v\n", ch.Name(), attempt, deliverErr)
			}
			return deliverErr
		})

		if err != nil {
			fmt.Fprintf(w, "warning: %s failed after %d attempts, giving up\n", ch.Name(), attempts)
		} else {
			fmt.Fprintf(w, "%s: delivered %d paper(s) on attempt %d\n", ch.Name(), len(papers), attempts)
		}
		results = append(results, ChannelResult{Channel: ch.Name(), Attempts: attempts, Err: err})
	}
	return results
}
