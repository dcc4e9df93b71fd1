// Package jobs defines the background jobs dispatched on the queue.
package jobs

import (
	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/pkg/logger"
	"github.com/huyvng/storedash/pkg/queue"
	"github.com/huyvng/storedash/pkg/ws"
)

// hub is the dashboard relay jobs broadcast through. Set once at boot via
// Configure; queue workers deserialize jobs by name, so the hub cannot be
// carried in the job payload.
var hub *ws.Hub

// Configure wires the WebSocket hub and registers all job types with the
// queue. Call once at boot before workers start.
func Configure(h *ws.Hub) {
	hub = h
	queue.Register("*jobs.OrderCreatedJob", func() queue.Job { return &OrderCreatedJob{} })
}

// OrderCreatedJob pushes an orderCreated event to every connected
// dashboard. Delivery is fire-and-forget; clients that connect later see
// nothing.
type OrderCreatedJob struct {
	Order models.Order `json:"order"`
}

func (j *OrderCreatedJob) Handle() error {
	if hub == nil {
		return nil
	}
	return hub.BroadcastJSON("orderCreated", j.Order)
}

// Notifier adapts the queue to the order service's notification port.
type Notifier struct{}

// OrderCreated queues the broadcast so order creation never blocks on
// slow WebSocket clients.
func (Notifier) OrderCreated(order *models.Order) {
	if err := queue.Dispatch(&OrderCreatedJob{Order: *order}); err != nil {
		logger.Error("jobs: dispatch orderCreated failed", "error", err)
	}
}
