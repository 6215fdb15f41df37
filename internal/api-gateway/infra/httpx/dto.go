package httpx

import "github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"

type ProductResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	PassengerCapacity int64   `json:"passenger_capacity"`
	MaximumSpeed      float64 `json:"maximum_speed"`
	InStock           int64   `json:"in_stock"`
}

type OrderResponse struct {
	ID           int64                 `json:"id"`
	OrderDetails []OrderDetailResponse `json:"order_details"`
}

type OrderDetailResponse struct {
	ID        int64            `json:"id,omitempty"`
	ProductID string           `json:"product_id"`
	Price     string           `json:"price"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
	Image     string           `json:"image,omitempty"`
}

type CreatedProductResponse struct {
	ID string `json:"id"`
}

type CreatedOrderResponse struct {
	ID int64 `json:"id"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func mapProductToResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		PassengerCapacity: p.PassengerCapacity,
		MaximumSpeed:      p.MaximumSpeed,
		InStock:           p.InStock,
	}
}

func mapOrderToResponse(o entity.Order) OrderResponse {
	details := make([]OrderDetailResponse, len(o.Details))
	for i, it := range o.Details {
		d := OrderDetailResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Price:     it.Price.StringFixed(2),
			Quantity:  it.Quantity,
			Image:     it.Image,
		}
		if it.Product != nil {
			p := mapProductToResponse(*it.Product)
			d.Product = &p
		}
		details[i] = d
	}
	return OrderResponse{ID: o.ID, OrderDetails: details}
}

func mapOrdersToResponse(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrderToResponse(o)
	}
	return out
}
