package numerator

// Prefix identifies the kind of business document being numbered.
type Prefix string

const (
	PrefixInvoice  Prefix = "INV"
	PrefixPayment  Prefix = "PAY"
	PrefixShipment Prefix = "SHIP"
)

// SuffixLength is the number of random base36 characters after the timestamp.
const SuffixLength = 9
