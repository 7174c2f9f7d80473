package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aeolus-osc/aeolus-go/pkg/discovery"
	"github.com/aeolus-osc/aeolus-go/pkg/discovery/mocks"
	aeoluslog "github.com/aeolus-osc/aeolus-go/pkg/log"
	"github.com/aeolus-osc/aeolus-go/pkg/version"
)

func TestServiceInfo(t *testing.T) {
	cfg := defaultConfig()
	cfg.ControlChannel = 2

	info := serviceInfo(cfg, 9000, "chapel")

	assert.Equal(t, "Aeolus OSC (chapel)", info.InstanceName)
	assert.Equal(t, uint16(9000), info.Port)
	assert.Equal(t, version.Current, info.Protocol)
	assert.Equal(t, 2, info.Channel)
	assert.Equal(t, "aeolus", info.Instrument)

	cfg.Instruments = []string{"organ", "aeolus"}
	info = serviceInfo(cfg, 9000, "")
	assert.Equal(t, "Aeolus OSC", info.InstanceName)
	assert.Equal(t, "organ", info.Instrument)

	decoded, err := discovery.DecodeTXT(discovery.EncodeTXT(info))
	require.NoError(t, err, "service info must be advertisable")
	assert.Equal(t, info.Channel, decoded.Channel)
}

func TestStartAdvertising(t *testing.T) {
	ctx := context.Background()
	info := serviceInfo(defaultConfig(), 8080, "host")

	adv := mocks.NewMockAdvertiser(t)
	adv.EXPECT().Advertise(mock.Anything, info).Return(nil).Once()
	assert.True(t, startAdvertising(ctx, adv, info))

	failing := mocks.NewMockAdvertiser(t)
	failing.EXPECT().Advertise(mock.Anything, info).Return(errors.New("no multicast")).Once()
	assert.False(t, startAdvertising(ctx, failing, info))
}

func TestUDPPort(t *testing.T) {
	assert.Equal(t, 9000, udpPort(&net.UDPAddr{IP: net.IPv4zero, Port: 9000}))
	assert.Equal(t, 0, udpPort(nil))
	assert.Equal(t, 0, udpPort(&net.TCPAddr{Port: 80}))
}

type fakeBrowser struct {
	services []*discovery.Service
	err      error
}

func (b fakeBrowser) Browse(ctx context.Context) (<-chan *discovery.Service, error) {
	if b.err != nil {
		return nil, b.err
	}
	ch := make(chan *discovery.Service, len(b.services))
	for _, s := range b.services {
		ch <- s
	}
	close(ch)
	return ch, nil
}

func TestBrowse(t *testing.T) {
	b := fakeBrowser{services: []*discovery.Service{{
		ServiceInfo: discovery.ServiceInfo{
			InstanceName: "Aeolus OSC (chapel)",
			Port:         8080,
			Protocol:     "1.0",
			Channel:      1,
			Instrument:   "aeolus",
		},
		Host:      "chapel.local.",
		Addresses: []string{"192.168.1.20"},
	}}}

	var out bytes.Buffer
	require.NoError(t, browse(context.Background(), b, &out))

	assert.Contains(t, out.String(), "Aeolus OSC (chapel)")
	assert.Contains(t, out.String(), "host: chapel.local. port: 8080")
	assert.Contains(t, out.String(), "192.168.1.20")
	assert.Contains(t, out.String(), "channel: 1 instrument: aeolus")
}

func TestBrowse_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, browse(context.Background(), fakeBrowser{}, &out))
	assert.Equal(t, "No bridges found\n", out.String())
}

func TestBrowse_Error(t *testing.T) {
	var out bytes.Buffer
	err := browse(context.Background(), fakeBrowser{err: errors.New("no interface")}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestProtocolLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Nil(t, protocolLogger(nil, logger, false))

	_, ok := protocolLogger(nil, logger, true).(*aeoluslog.SlogAdapter)
	assert.True(t, ok)

	file, err := aeoluslog.NewFileLogger(filepath.Join(t.TempDir(), "session.alog"))
	require.NoError(t, err)
	defer file.Close()

	assert.Same(t, file, protocolLogger(file, logger, false))

	_, ok = protocolLogger(file, logger, true).(*aeoluslog.MultiLogger)
	assert.True(t, ok)
}
