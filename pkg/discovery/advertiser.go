package discovery

import (
	"context"
	"time"
)

// Advertiser publishes the bridge service.
type Advertiser interface {
	// Advertise starts advertising info, replacing any earlier
	// advertisement.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Stop withdraws the advertisement. Stopping twice is not an error.
	Stop() error
}

// Browser finds bridges on the local network.
type Browser interface {
	// Browse reports bridges until ctx is done. The channel is closed
	// when browsing ends.
	Browse(ctx context.Context) (<-chan *Service, error)
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       DefaultTTL,
	}
}
