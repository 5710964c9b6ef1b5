package domain

// NoWeightMark is stored in the weight field when logistics explicitly
// declares the order has no weight to register.
const NoWeightMark = "no-weight"

// PaymentPolicySatisfied applies the wallet verification policy:
// store-pickup must be paid, shipments must be paid or credit-approved,
// local deliveries pass with any payment status.
func PaymentPolicySatisfied(method DeliveryMethod, status PaymentStatus) bool {
	switch {
	case method == DeliveryStorePickup:
		return status == PaymentStatusPaid
	case method.IsShipment():
		return status == PaymentStatusPaid || status == PaymentStatusCreditApproved
	}
	return true
}
