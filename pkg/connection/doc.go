// Package connection tracks the bridge's link to the sequencer destination.
//
// It provides the destination State reported in protocol logs and the
// exponential Backoff the instrument probe waits on between resolution
// attempts:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s
//  3. Maximum delay: 30 seconds
//  4. Reset to 1s once a destination is resolved
//
// Each delay carries up to 25% random jitter:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
package connection
