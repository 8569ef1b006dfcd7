package types

// User is the authenticated identity returned by the ledger service.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// WalletCredentials is the persisted slice of a wallet: the address and
// nothing else. Private keys and mnemonics never appear here.
type WalletCredentials struct {
	Address string `json:"address"`
}

// Session pairs the user with their wallet address. A Session with a
// non-empty wallet address means the client is authenticated; a nil
// Session means it is not.
type Session struct {
	User   *User  `json:"user"`
	Wallet string `json:"wallet_address"`
}
