// Package push delivers best-effort web-push notifications to registered
// browser subscriptions. Delivery failures are logged and counted, never
// surfaced to the request that triggered them.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"fable/internal/models"
	"fable/internal/observability"

	"github.com/SherClockHolmes/webpush-go"
)

// VAPIDKeys is the key pair used to sign push requests. It is loaded once
// at startup; a missing or unreadable key file is fatal.
type VAPIDKeys struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// LoadVAPIDKeys reads the key pair from path.
func LoadVAPIDKeys(path string) (VAPIDKeys, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return VAPIDKeys{}, fmt.Errorf("read VAPID key file: %w", err)
	}
	var keys VAPIDKeys
	if err := json.Unmarshal(raw, &keys); err != nil {
		return VAPIDKeys{}, fmt.Errorf("parse VAPID key file %s: %w", path, err)
	}
	if keys.PublicKey == "" || keys.PrivateKey == "" {
		return VAPIDKeys{}, fmt.Errorf("VAPID key file %s is missing a key", path)
	}
	return keys, nil
}

// GenerateVAPIDKeys creates a fresh key pair.
func GenerateVAPIDKeys() (VAPIDKeys, error) {
	private, public, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return VAPIDKeys{}, err
	}
	return VAPIDKeys{PublicKey: public, PrivateKey: private}, nil
}

// Dispatcher holds the registered subscriptions for the process lifetime and
// fans out notifications to all of them.
type Dispatcher struct {
	keys       VAPIDKeys
	subscriber string

	mu   sync.Mutex
	subs map[string]webpush.Subscription // keyed by endpoint
}

// NewDispatcher returns a Dispatcher signing with keys. subscriber is the
// contact address sent to push services, per the web-push spec.
func NewDispatcher(keys VAPIDKeys, subscriber string) *Dispatcher {
	return &Dispatcher{
		keys:       keys,
		subscriber: subscriber,
		subs:       map[string]webpush.Subscription{},
	}
}

// PublicKey returns the VAPID public key clients subscribe with.
func (d *Dispatcher) PublicKey() string {
	return d.keys.PublicKey
}

// Subscribe registers a subscription and immediately attempts one test
// delivery, best-effort. Re-subscribing the same endpoint overwrites the
// previous registration.
func (d *Dispatcher) Subscribe(ctx context.Context, sub *webpush.Subscription) error {
	if sub == nil || sub.Endpoint == "" {
		return models.NewValidationError("Subscription endpoint is required")
	}

	d.mu.Lock()
	d.subs[sub.Endpoint] = *sub
	d.mu.Unlock()

	go d.send(*sub, []byte(`{"title":"Fable","body":"Push notifications enabled"}`))
	return nil
}

// Unsubscribe removes a subscription by its endpoint.
func (d *Dispatcher) Unsubscribe(_ context.Context, endpoint string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.subs[endpoint]; !ok {
		return models.NewNotFoundError("Subscription", endpoint)
	}
	delete(d.subs, endpoint)
	return nil
}

// StoryCreated dispatches a notification for a freshly created story to
// every registered subscription. Delivery is asynchronous and never awaited
// for correctness.
func (d *Dispatcher) StoryCreated(story models.Story) {
	payload, err := json.Marshal(map[string]string{
		"title":   "New story on Fable",
		"body":    story.Title,
		"storyId": story.ID,
	})
	if err != nil {
		slog.Error("push: could not encode notification payload", "error", err)
		return
	}

	d.mu.Lock()
	subs := make([]webpush.Subscription, 0, len(d.subs))
	for _, sub := range d.subs {
		subs = append(subs, sub)
	}
	d.mu.Unlock()

	for _, sub := range subs {
		go d.send(sub, payload)
	}
}

func (d *Dispatcher) send(sub webpush.Subscription, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, &webpush.Options{
		Subscriber:      d.subscriber,
		VAPIDPublicKey:  d.keys.PublicKey,
		VAPIDPrivateKey: d.keys.PrivateKey,
		TTL:             60,
	})
	if err != nil {
		observability.PushDeliveries.WithLabelValues("error").Inc()
		slog.Warn("push: delivery failed", "endpoint", sub.Endpoint, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		observability.PushDeliveries.WithLabelValues("rejected").Inc()
		slog.Warn("push: delivery rejected", "endpoint", sub.Endpoint, "status", resp.StatusCode)
		return
	}
	observability.PushDeliveries.WithLabelValues("ok").Inc()
}
