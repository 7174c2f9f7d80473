package discovery

import (
	"errors"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceType is the DNS-SD type of OSC servers.
	ServiceType = "_osc._udp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default OSC port.
	DefaultPort = 8080

	// DefaultTTL is the DNS record TTL.
	DefaultTTL = 120 * time.Second
)

// TXT record keys.
const (
	TXTKeyVersion    = "txtvers" // TXT format version
	TXTKeyProtocol   = "v"       // Protocol version
	TXTKeyChannel    = "ch"      // Control channel (1-16)
	TXTKeyInstrument = "instr"   // Instrument name (optional)
)

// TXTVersion is the TXT format version written by this package.
const TXTVersion = "1"

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxChannel is the highest control channel.
	MaxChannel = 16
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrIncompatible        = errors.New("incompatible protocol version")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
)

// ServiceInfo describes an advertised bridge.
type ServiceInfo struct {
	// InstanceName is the user-visible service name.
	InstanceName string

	// Port is the UDP port the bridge listens on.
	Port uint16

	// Protocol is the "major.minor" protocol version.
	Protocol string

	// Channel is the 1-based control channel.
	Channel int

	// Instrument is the instrument name the bridge resolves.
	Instrument string
}

// Service is a bridge found by browsing.
type Service struct {
	ServiceInfo

	// Host is the advertised host name.
	Host string

	// Addresses are the resolved IP addresses.
	Addresses []string
}
