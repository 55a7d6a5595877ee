package tracking

import "github.com/wichananm65/arix-backend/internal/order"

// ProgressResponse is the body of GET /api/orders/:orderNo/progress.
type ProgressResponse struct {
	OrderNo        string         `json:"orderNo"`
	Status         order.Status   `json:"status"`
	StepsCompleted int            `json:"stepsCompleted"`
	Steps          []order.Status `json:"steps"`
	Cancelled      bool           `json:"cancelled"`
	Delivered      bool           `json:"delivered"`
}

func ToProgressResponse(ord order.Order) ProgressResponse {
	p := order.ProgressOf(ord.Status)
	return ProgressResponse{
		OrderNo:        ord.OrderNo,
		Status:         p.Status,
		StepsCompleted: p.StepsCompleted,
		Steps:          p.Steps,
		Cancelled:      p.Cancelled,
		Delivered:      p.Delivered,
	}
}
