package types

// Wire shapes for the ledger service REST API. Field names follow the
// backend contract and must not drift.

type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	TransactionPin  string `json:"transaction_pin"`
}

// OneTimeWallet carries the credentials the backend delivers exactly once
// at signup. The caller must surface them to the user; no layer below the
// caller may retain them.
type OneTimeWallet struct {
	Address    string `json:"address"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	Mnemonic   string `json:"mnemonic"`
}

type SignupResponse struct {
	Message string        `json:"message"`
	User    User          `json:"user"`
	Wallet  OneTimeWallet `json:"wallet"`
	Warning string        `json:"warning"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginWallet struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	User    User        `json:"user"`
	Wallet  LoginWallet `json:"wallet"`
}

type RecoverRequest struct {
	Mnemonic string `json:"mnemonic"`
}

type RecoverResponse struct {
	Message      string `json:"message"`
	PublicKey    string `json:"public_key"`
	PrivateKey   string `json:"private_key"`
	WalletExists bool   `json:"wallet_exists"`
	Balance      string `json:"balance,omitempty"`
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type TransactionResponse struct {
	TxHash   string `json:"tx_hash"`
	Status   string `json:"status"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
	Message  string `json:"message"`
}

type WalletTransactionsResponse struct {
	Address          string              `json:"address"`
	TransactionCount int                 `json:"transaction_count"`
	Transactions     []TransactionRecord `json:"transactions"`
}

type PendingTransactionsResponse struct {
	Count        int                 `json:"count"`
	Transactions []TransactionRecord `json:"transactions"`
}

type DepositRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type DepositResponse struct {
	TxHash  string `json:"tx_hash"`
	Message string `json:"message"`
}

type MarketPriceResponse struct {
	CurrentPriceUSD float64 `json:"current_price_usd"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the single typed error payload the backend emits for
// non-2xx statuses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
