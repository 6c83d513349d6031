package acb

// RatePolicy selects the exchange rate kind used to convert the amounts of a
// transaction into the reporting currency.
type RatePolicy struct {
	Acquire RateKind // ACQUIRE and BUY
	Dispose RateKind // SELL
	Other   RateKind // everything else, corporate actions included
}

// UniformRate returns a policy using the same rate kind for every transaction.
func UniformRate(kind RateKind) RatePolicy {
	return RatePolicy{Acquire: kind, Dispose: kind, Other: kind}
}

// For returns the rate kind to use for a transaction kind.
func (p RatePolicy) For(k Kind) RateKind {
	switch {
	case k.IsAcquisition():
		return p.Acquire
	case k == Sell:
		return p.Dispose
	default:
		return p.Other
	}
}
