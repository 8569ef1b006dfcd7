package types

// TransactionIntent is one user request to move value. Amount stays the
// exact decimal string the user entered; it is never parsed into a float
// on any path. Consumed exactly once by the signing pipeline.
type TransactionIntent struct {
	Sender   string
	Receiver string
	Amount   string
	PIN      string
}

// SignedTransaction is the ledger-submittable form: the intent fields plus
// the DER-encoded ECDSA signature in hex. One intent produces exactly one
// signature.
type SignedTransaction struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    string `json:"amount"`
	Signature string `json:"signature"`
	PIN       string `json:"transaction_pin"`
}

// TransactionRecord is a ledger-side view of a transaction, as returned by
// the history and pending endpoints.
type TransactionRecord struct {
	TxHash    string `json:"tx_hash"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Signature string `json:"signature,omitempty"`
}
