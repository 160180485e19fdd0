package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/ParcelDesk/internal/broker/messages"
)

type Source interface {
	Consume(ctx context.Context, handler func(ctx context.Context, key, value []byte) error) error
}

type Notifier struct {
	mailer Mailer

	startedAt   time.Time
	received    atomic.Int64
	sent        atomic.Int64
	skipped     atomic.Int64
	failed      atomic.Int64
	lastEventNs atomic.Int64

	lastErrorMu sync.Mutex
	lastError   string
}

func New(m Mailer) *Notifier {
	return &Notifier{mailer: m, startedAt: time.Now().UTC()}
}

// Run consumes status-changed events until ctx is done.
func (n *Notifier) Run(ctx context.Context, src Source) error {
	slog.Info("notifier started")
	err := src.Consume(ctx, n.Handle)
	slog.Info("notifier stopped")
	return err
}

// Handle processes one event. Undecodable events and mail failures are
// recorded and dropped so one bad message cannot stall the partition.
func (n *Notifier) Handle(ctx context.Context, key, value []byte) error {
	n.received.Add(1)
	n.lastEventNs.Store(time.Now().UnixNano())

	var ev messages.TrackingStatusChanged
	if err := json.Unmarshal(value, &ev); err != nil {
		n.skipped.Add(1)
		n.setLastError(err)
		slog.Warn("undecodable status event", "key", string(key), "error", err.Error())
		return nil
	}
	if strings.TrimSpace(ev.Email) == "" {
		n.skipped.Add(1)
		return nil
	}

	subject, body := Render(ev)
	if err := n.mailer.Send(ctx, ev.Email, subject, body); err != nil {
		n.failed.Add(1)
		n.setLastError(err)
		slog.Error("status mail failed", "tracking_id", ev.TrackingID, "error", err.Error())
		return nil
	}
	n.sent.Add(1)
	slog.Info("status mail sent", "tracking_id", ev.TrackingID, "status", ev.Status)
	return nil
}

func (n *Notifier) setLastError(err error) {
	n.lastErrorMu.Lock()
	n.lastError = err.Error()
	n.lastErrorMu.Unlock()
}

type Stats struct {
	StartedAt   time.Time  `json:"startedAt"`
	LastEventAt *time.Time `json:"lastEventAt,omitempty"`
	Received    int64      `json:"received"`
	Sent        int64      `json:"sent"`
	Skipped     int64      `json:"skipped"`
	Failed      int64      `json:"failed"`
	LastError   string     `json:"lastError,omitempty"`
}

func (n *Notifier) Stats() Stats {
	st := Stats{
		StartedAt: n.startedAt,
		Received:  n.received.Load(),
		Sent:      n.sent.Load(),
		Skipped:   n.skipped.Load(),
		Failed:    n.failed.Load(),
	}
	if ns := n.lastEventNs.Load(); ns > 0 {
		t := time.Unix(0, ns).UTC()
		st.LastEventAt = &t
	}
	n.lastErrorMu.Lock()
	st.LastError = n.lastError
	n.lastErrorMu.Unlock()
	return st
}

// Render builds the plain-text mail for one event.
func Render(ev messages.TrackingStatusChanged) (subject, body string) {
	subject = fmt.Sprintf("Your shipment %s: %s", ev.TrackingID, ev.Status)

	var b strings.Builder
	name := ev.Name
	if name == "" {
		name = "customer"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "The status of shipment %s is now %q.\n", ev.TrackingID, ev.Status)
	if ev.Location != "" {
		fmt.Fprintf(&b, "Current location: %s\n", ev.Location)
	}
	if ev.EstimatedDate != "" {
		eta := ev.EstimatedDate
		if ev.EstimatedTime != "" {
			eta += " " + ev.EstimatedTime
		}
		fmt.Fprintf(&b, "Estimated delivery: %s\n", eta)
	}
	b.WriteString("\nYou can follow the shipment any time with your tracking code.\n")
	return subject, b.String()
}
