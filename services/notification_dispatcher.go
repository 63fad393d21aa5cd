package services

import (
	"context"
	"sync"
	"time"

	"restorativeLandsAPI/internal/logger"
	"restorativeLandsAPI/internal/notification"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, push notification.Push) error
}

// NotificationDispatcher delivers pushes from a bounded queue with a fixed
// pool of workers.
type NotificationDispatcher struct {
	pushProvider PushNotificationProvider
	workers      int
	jobQueue     chan notification.Push
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	enqueueWait  time.Duration
}

func NewNotificationDispatcher(provider PushNotificationProvider, workers int) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if provider == nil {
		provider = &MockPushProvider{}
	}

	dispatcher := &NotificationDispatcher{
		pushProvider: provider,
		workers:      workers,
		jobQueue:     make(chan notification.Push, 100),
		stopChan:     make(chan struct{}),
		enqueueWait:  250 * time.Millisecond,
	}

	dispatcher.startWorkers()

	return dispatcher
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

func (d *NotificationDispatcher) worker(id int) {
	defer d.wg.Done()
	for {
		select {
		case push := <-d.jobQueue:
			d.processJob(id, push)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(worker int, push notification.Push) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.pushProvider.SendPush(ctx, push); err != nil {
		logger.Warn("push failed", "worker", worker, "topic", push.Topic, "err", err)
	}
}

// Dispatch queues push. When the queue stays full past a short wait the
// push is dropped; a request never waits on delivery.
func (d *NotificationDispatcher) Dispatch(push notification.Push) bool {
	select {
	case <-d.stopChan:
		return false
	default:
	}

	select {
	case d.jobQueue <- push:
		return true
	case <-time.After(d.enqueueWait):
		logger.Warn("dropping push: queue full", "topic", push.Topic)
		return false
	}
}

// Stop waits for in-flight pushes. Queued but unstarted pushes are discarded.
func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() {
		logger.Info("stopping notification dispatcher")
		close(d.stopChan)
		d.wg.Wait()
		logger.Info("notification dispatcher stopped")
	})
}

// MockPushProvider logs instead of sending. It is used when FCM is not configured.
type MockPushProvider struct{}

func (m *MockPushProvider) SendPush(ctx context.Context, push notification.Push) error {
	logger.Info("MOCK PUSH", "topic", push.Topic, "title", push.Title, "body", push.Body)
	return nil
}
