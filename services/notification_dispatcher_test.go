package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/notification"
)

type recordingProvider struct {
	mu     sync.Mutex
	pushes []notification.Push
	err    error
}

func (p *recordingProvider) SendPush(ctx context.Context, push notification.Push) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, push)
	return p.err
}

func (p *recordingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushes)
}

func TestDispatcherDeliversPushes(t *testing.T) {
	provider := &recordingProvider{}
	d := NewNotificationDispatcher(provider, 2)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		require.True(t, d.Dispatch(notification.Push{Topic: "user-1", Title: "hi"}))
	}

	assert.Eventually(t, func() bool { return provider.count() == 5 }, time.Second, 10*time.Millisecond)
}

func TestDispatcherSurvivesProviderErrors(t *testing.T) {
	provider := &recordingProvider{err: errors.New("boom")}
	d := NewNotificationDispatcher(provider, 1)
	defer d.Stop()

	d.Dispatch(notification.Push{Topic: "user-1"})
	d.Dispatch(notification.Push{Topic: "user-2"})

	assert.Eventually(t, func() bool { return provider.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestDispatchAfterStopIsRejected(t *testing.T) {
	d := NewNotificationDispatcher(&recordingProvider{}, 1)
	d.Stop()
	d.Stop()

	assert.False(t, d.Dispatch(notification.Push{Topic: "user-1"}))
}

func TestNilProviderFallsBackToMock(t *testing.T) {
	d := NewNotificationDispatcher(nil, 0)
	defer d.Stop()

	assert.IsType(t, &MockPushProvider{}, d.pushProvider)
	assert.Equal(t, 1, d.workers)
}
