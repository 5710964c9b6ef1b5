package domain

// CarrierDirectory lists the carriers logistics may assign per delivery
// method: local couriers for local deliveries, shipping services for
// domestic and international shipments.
type CarrierDirectory struct {
	Local    []string
	National []string
}

func DefaultCarriers() CarrierDirectory {
	return CarrierDirectory{
		Local:    []string{"Duban Pineda", "Picap", "Didi", "Bodega"},
		National: []string{"Interrapidisimo", "Picap", "Bodega"},
	}
}

// For returns the carriers valid for the delivery method. Store-pickup
// orders never get a carrier.
func (d CarrierDirectory) For(method DeliveryMethod) []string {
	switch {
	case method == DeliveryLocal:
		return d.Local
	case method.IsShipment():
		return d.National
	}
	return nil
}

func (d CarrierDirectory) Allowed(method DeliveryMethod, carrier string) bool {
	for _, c := range d.For(method) {
		if c == carrier {
			return true
		}
	}
	return false
}
