// Package notify defines the reminder-delivery boundary. The reminder
// engine decides whether and what to deliver; a Notifier only carries the
// message out, best effort.
package notify

import (
	"log/slog"

	"github.com/starford/gestorplan/internal/sse"
)

// Notifier delivers a reminder to whoever is listening. Delivery is best
// effort and never returns an error to the caller.
type Notifier interface {
	Deliver(title, body string)
}

// LogNotifier writes reminders to the structured log. Used in headless runs
// and as a durable trace alongside other notifiers.
type LogNotifier struct{}

// Deliver implements Notifier.
func (LogNotifier) Deliver(title, body string) {
	slog.Info("reminder delivered", slog.String("title", title), slog.String("body", body))
}

// SSENotifier broadcasts reminders to connected browsers through the SSE
// broker. Clients with no listeners drop the event silently.
type SSENotifier struct {
	Broker *sse.Broker
}

// Deliver implements Notifier.
func (n SSENotifier) Deliver(title, body string) {
	n.Broker.Publish(sse.Event{Type: "reminder", Data: map[string]string{
		"title": title,
		"body":  body,
	}})
}

type multiNotifier []Notifier

func (m multiNotifier) Deliver(title, body string) {
	for _, n := range m {
		n.Deliver(title, body)
	}
}

// Multi fans a delivery out to every given notifier.
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}
