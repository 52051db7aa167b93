package orders

import (
	"context"
	"log/slog"
)

// AdminService moves orders through pending -> Completed -> Delivered_picked.
type AdminService struct {
	repo   *Repo
	logger *slog.Logger
}

func NewAdminService(repo *Repo, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{repo: repo, logger: logger}
}

type TransitionInput struct {
	OrderID int64
	Action  string // complete|deliver|reopen
}

type TransitionResult struct {
	Order      Order
	FromStatus string
}

func (s *AdminService) Transition(ctx context.Context, in TransitionInput) (TransitionResult, error) {
	if in.OrderID <= 0 || in.Action == "" {
		return TransitionResult{}, ErrInvalidTransition
	}

	o, err := s.repo.Get(ctx, in.OrderID)
	if err != nil {
		return TransitionResult{}, err
	}

	from := o.OrderStatus
	to, err := nextStatus(from, in.Action)
	if err != nil {
		return TransitionResult{}, err
	}

	updated, err := s.repo.Patch(ctx, o.ID, map[string]any{"order_status": to})
	if err != nil {
		return TransitionResult{}, err
	}
	s.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID,
		"code", o.UniqueCode,
		"from", from,
		"to", to,
	)
	return TransitionResult{Order: updated, FromStatus: from}, nil
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case "complete":
		if from == StatusPending {
			return StatusCompleted, nil
		}
		return "", ErrInvalidTransition
	case "deliver":
		if from == StatusCompleted || from == StatusPending {
			return StatusDeliveredPicked, nil
		}
		return "", ErrInvalidTransition
	case "reopen":
		if from == StatusCompleted {
			return StatusPending, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}

// UpdateStatus sets order_status directly. Any of the three known statuses is
// accepted regardless of the current one.
func (s *AdminService) UpdateStatus(ctx context.Context, id int64, status string) (TransitionResult, error) {
	if !contains(OrderStatuses, status) {
		return TransitionResult{}, &ValidationError{Field: "order_status", Msg: "unknown order status " + status}
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return TransitionResult{}, err
	}
	if o.OrderStatus == status {
		return TransitionResult{Order: o, FromStatus: status}, nil
	}

	updated, err := s.repo.Patch(ctx, o.ID, map[string]any{"order_status": status})
	if err != nil {
		return TransitionResult{}, err
	}
	s.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID,
		"code", o.UniqueCode,
		"from", o.OrderStatus,
		"to", status,
	)
	return TransitionResult{Order: updated, FromStatus: o.OrderStatus}, nil
}
