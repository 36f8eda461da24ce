package notify

import "context"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Dispatch is one composed alert message bound for one recipient. The alert
// evaluator's contract ends at producing these; transports are fire-and-forget
// from its point of view.
type Dispatch struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Recipient   string    `json:"recipient"`
	Channels    []Channel `json:"channels"`
	Severity    string    `json:"severity"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Metric      string    `json:"metric"`
	Value       float64   `json:"value"`
	EquipmentID int64     `json:"equipment_id"`
	FacilityID  int64     `json:"facility_id"`
}

type Dispatcher interface {
	Send(ctx context.Context, d Dispatch) error
}

// Router fans a dispatch out to the transport configured per channel.
type Router struct {
	Email Dispatcher
	Push  Dispatcher
}

func (r *Router) Send(ctx context.Context, d Dispatch) error {
	var firstErr error
	for _, ch := range d.Channels {
		var t Dispatcher
		switch ch {
		case ChannelEmail:
			t = r.Email
		case ChannelPush:
			t = r.Push
		}
		if t == nil {
			continue
		}
		if err := t.Send(ctx, d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Nop drops every dispatch. Used in tests and local environments.
type Nop struct{}

func (Nop) Send(context.Context, Dispatch) error { return nil }
