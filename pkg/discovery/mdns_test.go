package discovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aeolus-osc/aeolus-go/pkg/discovery"
)

func TestMDNSAdvertiserStopIdle(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	if err := adv.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := adv.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestMDNSAdvertiserUpdateIdle(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	if err := adv.Update(&discovery.ServiceInfo{Channel: 1}); err == nil {
		t.Error("Update() should fail before Advertise")
	}
}

func TestMDNSAdvertiserRejectsBadName(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	err := adv.Advertise(context.Background(), &discovery.ServiceInfo{Channel: 1})
	if !errors.Is(err, discovery.ErrMissingRequired) {
		t.Errorf("Advertise() error = %v, want ErrMissingRequired", err)
	}
}

func TestDefaultAdvertiserConfig(t *testing.T) {
	cfg := discovery.DefaultAdvertiserConfig()
	if cfg.TTL != discovery.DefaultTTL {
		t.Errorf("TTL = %v, want %v", cfg.TTL, discovery.DefaultTTL)
	}
	if cfg.Interface != "" {
		t.Errorf("Interface = %q, want all interfaces", cfg.Interface)
	}
}
