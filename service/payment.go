package service

import "delivery-management-api/models"

// PaymentRates are the per-unit amounts used to pay drivers
type PaymentRates struct {
	PerOrder  float64
	PerMinute float64
	PerKm     float64
}

func DefaultPaymentRates() PaymentRates {
	return PaymentRates{PerOrder: 10, PerMinute: 0.05, PerKm: 0.20}
}

type PaymentDetails struct {
	OrdersPayment     float64 `json:"ordersPayment"`
	OnlineTimePayment float64 `json:"onlineTimePayment"`
	DistancePayment   float64 `json:"distancePayment"`
	TotalPayment      float64 `json:"totalPayment"`
}

type PaymentSummary struct {
	DriverID       string         `json:"driverId"`
	Name           string         `json:"name"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
}

// CalculatePayment prices a driver's completed orders, online minutes and
// distance. It does not touch the driver.
func CalculatePayment(d models.Driver, r PaymentRates) PaymentDetails {
	orders := float64(d.CompletedOrders) * r.PerOrder
	online := float64(d.OnlineTime) * r.PerMinute
	distance := d.DistanceTraveled * r.PerKm
	return PaymentDetails{
		OrdersPayment:     orders,
		OnlineTimePayment: online,
		DistancePayment:   distance,
		TotalPayment:      orders + online + distance,
	}
}
