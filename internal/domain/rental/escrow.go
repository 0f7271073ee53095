package rental

import "lendhub/internal/pkg/errs"

// CancellationRefund simulates what flows back to the renter when a rental
// is cancelled from the given status: nothing before payment, everything
// right after payment, deposit only once the handover was confirmed.
func CancellationRefund(status Status, subtotal, deposit Money) Money {
	switch status {
	case StatusPendingPayment:
		return NewMoney(0)
	case StatusPaid:
		return subtotal.Add(deposit)
	default:
		return deposit
	}
}

// RetentionFor resolves how much of the deposit is kept for an incident
// decision. Partial retention takes the caller's amount and requires
// 0 < retained < deposit.
func RetentionFor(decision IncidentDecision, requested *Money, deposit Money) (Money, error) {
	switch decision {
	case DecisionRelease:
		return NewMoney(0), nil
	case DecisionRetainTotal:
		return deposit, nil
	case DecisionRetainPartial:
		if requested == nil {
			return Money{}, errs.ErrRetainedOutOfRange
		}
		if !requested.IsPositive() || !requested.Less(deposit) {
			return Money{}, errs.ErrRetainedOutOfRange
		}
		return *requested, nil
	default:
		return Money{}, errs.Category(errs.New("invalid incident decision"), errs.ErrValidation)
	}
}
