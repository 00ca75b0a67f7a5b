package container

// Direction tells which way a Transfer moved.
type Direction string

const (
	DirectionDeposit  Direction = "deposit"
	DirectionWithdraw Direction = "withdraw"
)

// Transfer reports a deposit or withdrawal: what was asked for and what the
// container could actually apply.
type Transfer struct {
	Direction Direction `json:"direction"`
	Requested float64   `json:"requested"`
	Applied   float64   `json:"applied"`
}

// Partial reports whether a positive request was only partly applied.
func (t Transfer) Partial() bool {
	return t.Requested > 0 && t.Applied < t.Requested
}

// Ignored reports whether nothing at all was applied.
func (t Transfer) Ignored() bool {
	return t.Applied == 0
}
