package converter

import (
	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/money"
	"learnhub-checkout/internal/pkg/pgconv"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	return sqlc.CreateOrderParams{
		ID:              o.ID(),
		UserID:          o.UserID(),
		SubtotalMinor:   o.Subtotal().Int64(),
		DiscountMinor:   o.DiscountAmount().Int64(),
		AmountMinor:     o.Amount().Int64(),
		Currency:        o.Currency(),
		DiscountCode:    pgconv.OptionalText(o.DiscountCode().String()),
		Status:          o.Status().String(),
		PaymentMode:     o.PaymentMode().String(),
		CustomerName:    o.Customer().Name(),
		CustomerEmail:   o.Customer().Email(),
		CustomerContact: o.Customer().Contact(),
		CreatedAt:       pgconv.TimeToPgtype(o.CreatedAt()),
	}
}

func OrderItemsToParams(o *order.Order) []sqlc.CreateOrderItemParams {
	params := make([]sqlc.CreateOrderItemParams, len(o.Items()))
	for i, it := range o.Items() {
		params[i] = sqlc.CreateOrderItemParams{
			OrderID:    o.ID(),
			CourseID:   it.CourseID,
			CourseName: it.CourseName,
			PriceMinor: it.Price.Int64(),
			Position:   int32(i), // #nosec G115 -- order item count is tiny
		}
	}
	return params
}

func OrderToStateParams(o *order.Order) sqlc.UpdateOrderStateParams {
	return sqlc.UpdateOrderStateParams{
		ID:               o.ID(),
		Status:           o.Status().String(),
		GatewaySessionID: pgconv.OptionalText(o.GatewaySessionID()),
		PaymentID:        pgconv.OptionalText(o.PaymentID()),
		FailureReason:    pgconv.OptionalText(string(o.FailureReason())),
		VerifiedAt:       pgconv.TimePtrToPgtype(o.VerifiedAt()),
		CompletedAt:      pgconv.TimePtrToPgtype(o.CompletedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func OrderFromRows(row sqlc.Orders, items []sqlc.OrderItems) (*order.Order, error) {
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, len(items))
	for i, it := range items {
		lines[i] = order.LineItem{
			CourseID:   it.CourseID,
			CourseName: it.CourseName,
			Price:      money.Minor(it.PriceMinor),
		}
	}

	return order.Reconstruct(order.ReconstructParams{
		ID:               row.ID,
		UserID:           row.UserID,
		Items:            lines,
		Subtotal:         row.SubtotalMinor,
		DiscountAmount:   row.DiscountMinor,
		Amount:           row.AmountMinor,
		DiscountCode:     pgconv.StringFromPgtype(row.DiscountCode),
		Currency:         row.Currency,
		Status:           status,
		PaymentMode:      order.PaymentMode(row.PaymentMode),
		GatewaySessionID: pgconv.StringFromPgtype(row.GatewaySessionID),
		PaymentID:        pgconv.StringFromPgtype(row.PaymentID),
		FailureReason:    pgconv.StringFromPgtype(row.FailureReason),
		Customer:         order.RestoreCustomerInfo(row.CustomerName, row.CustomerEmail, row.CustomerContact),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
		VerifiedAt:       pgconv.TimePtrFromPgtype(row.VerifiedAt),
		CompletedAt:      pgconv.TimePtrFromPgtype(row.CompletedAt),
	}), nil
}
