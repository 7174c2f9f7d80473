package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aeolus-osc/aeolus-go/pkg/seq"
	"github.com/aeolus-osc/aeolus-go/pkg/seq/mocks"
)

var (
	aeolusEP = seq.Endpoint{Client: 128, Port: 0}
	otherEP  = seq.Endpoint{Client: 129, Port: 0}
)

func TestResolve_DiscoversByName(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{
		{Client: 14, Name: "Midi Through", Ports: []int{0}},
		{Client: 128, Name: "aeolus", Ports: []int{0, 1}},
	}, nil).Once()
	tr.EXPECT().Connect(aeolusEP).Return(nil).Once()

	r := New(tr, nil, nil)
	ep, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, aeolusEP, ep)

	cur, ok := r.Current()
	assert.True(t, ok)
	assert.Equal(t, aeolusEP, cur)
}

func TestResolve_SubstringMatchPicksFirst(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{
		{Client: 130, Name: "aeolus-x11", Ports: []int{2}},
		{Client: 128, Name: "aeolus", Ports: []int{0}},
	}, nil).Once()
	tr.EXPECT().Connect(seq.Endpoint{Client: 130, Port: 0}).Return(nil).Once()

	ep, err := New(tr, nil, nil).Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, seq.Endpoint{Client: 130, Port: 0}, ep)
}

func TestResolve_NotFound(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{
		{Client: 14, Name: "Midi Through", Ports: []int{0}},
	}, nil).Once()

	r := New(tr, nil, nil)
	_, err := r.Resolve(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := r.Current()
	assert.False(t, ok)
	tr.AssertNotCalled(t, "Connect", mock.Anything)
	tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestResolve_CachedConnected(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{{Client: 128, Name: "aeolus"}}, nil).Once()
	tr.EXPECT().Connect(aeolusEP).Return(nil).Once()
	tr.EXPECT().Connected(aeolusEP).Return(true, nil).Twice()

	r := New(tr, nil, nil)
	for i := 0; i < 3; i++ {
		ep, err := r.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, aeolusEP, ep)
	}
}

func TestResolve_CachedGoneRediscovers(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{{Client: 128, Name: "aeolus"}}, nil).Once()
	tr.EXPECT().Connect(aeolusEP).Return(nil).Once()

	r := New(tr, nil, nil)
	_, err := r.Resolve(nil)
	require.NoError(t, err)

	tr.EXPECT().Connected(aeolusEP).Return(false, nil).Once()
	tr.EXPECT().Participants().Return([]seq.Participant{{Client: 129, Name: "aeolus"}}, nil).Once()
	tr.EXPECT().Connect(otherEP).Return(nil).Once()

	ep, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, otherEP, ep)
}

func TestResolve_Explicit(t *testing.T) {
	explicit := seq.Endpoint{Client: 131, Port: 2}
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Connect(explicit).Return(nil).Once()

	ep, err := New(tr, nil, nil).Resolve(&explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, ep)
	tr.AssertNotCalled(t, "Participants")
}

func TestResolve_Configured(t *testing.T) {
	configured := seq.Endpoint{Client: 131, Port: 0}
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Connect(configured).Return(nil).Once()

	r := New(tr, &configured, nil)
	configured.Client = 999 // the resolver keeps its own copy

	ep, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, seq.Endpoint{Client: 131, Port: 0}, ep)
}

func TestResolve_ConnectFailure(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Connect(aeolusEP).Return(errors.New("no such port")).Once()

	r := New(tr, &aeolusEP, nil)
	_, err := r.Resolve(nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, ok := r.Current()
	assert.False(t, ok)
}

func TestResolve_CustomNames(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{
		{Client: 128, Name: "aeolus"},
		{Client: 135, Name: "GrandOrgue"},
	}, nil).Once()
	tr.EXPECT().Connect(seq.Endpoint{Client: 135}).Return(nil).Once()

	ep, err := New(tr, nil, []string{"GrandOrgue"}).Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, 135, ep.Client)
}

func TestForget(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Connect(aeolusEP).Return(nil).Twice()

	r := New(tr, &aeolusEP, nil)
	_, err := r.Resolve(nil)
	require.NoError(t, err)

	r.Forget()
	_, ok := r.Current()
	assert.False(t, ok)

	// No Connected check after Forget: the configured endpoint is connected again.
	_, err = r.Resolve(nil)
	require.NoError(t, err)
}

func TestResolve_CachedGoneNotFound(t *testing.T) {
	tr := mocks.NewMockTransport(t)
	tr.EXPECT().Participants().Return([]seq.Participant{{Client: 128, Name: "aeolus"}}, nil).Once()
	tr.EXPECT().Connect(aeolusEP).Return(nil).Once()

	r := New(tr, nil, nil)
	_, err := r.Resolve(nil)
	require.NoError(t, err)

	tr.EXPECT().Connected(aeolusEP).Return(false, nil).Once()
	tr.EXPECT().Participants().Return(nil, nil).Once()

	_, err = r.Resolve(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := r.Current()
	assert.False(t, ok, "stale destination must be dropped")
}
