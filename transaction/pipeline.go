package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/sifranet/sifra-wallet/crypto"
	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/monitoring"
	"github.com/sifranet/sifra-wallet/types"
)

// LedgerGateway is the slice of the backend the pipeline needs: a balance
// read at pipeline start and the submission call.
type LedgerGateway interface {
	Balance(ctx context.Context, address string) (*types.BalanceResponse, error)
	SubmitTransaction(ctx context.Context, tx types.SignedTransaction) (*types.TransactionResponse, error)
}

// Result is the gateway acknowledgement of an accepted submission.
type Result struct {
	TxHash string
	Status string
}

// Pipeline turns one TransactionIntent into one signed, submitted
// transaction. It never mutates the session; callers refresh balance and
// history afterwards.
type Pipeline struct {
	gw        LedgerGateway
	keys      *keyholder.Holder
	onSending func()
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSubmitObserver registers a callback invoked after signing completes
// and immediately before the gateway submission. The send state machine
// uses it to flip from signing to sending.
func WithSubmitObserver(fn func()) Option {
	return func(p *Pipeline) { p.onSending = fn }
}

func NewPipeline(gw LedgerGateway, keys *keyholder.Holder, opts ...Option) *Pipeline {
	p := &Pipeline{gw: gw, keys: keys}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignAndSubmit runs the five pipeline steps in order: validate amount
// against the last known balance, build the canonical payload, digest and
// sign, submit, and unconditionally wipe the transient key holder. The
// balance read is advisory; the backend stays the authority on funds and
// the rejection path covers race losses.
func (p *Pipeline) SignAndSubmit(ctx context.Context, intent types.TransactionIntent, privKeyHex string) (*Result, error) {
	defer p.keys.Clear()

	balance, err := p.gw.Balance(ctx, intent.Sender)
	if err != nil {
		return nil, err
	}
	ok, err := AmountWithinBalance(intent.Amount, balance.Balance)
	if err != nil {
		return nil, walleterrors.NewFieldError("amount", walleterrors.ErrMsgInvalidAmount)
	}
	if !ok {
		amt, _ := ParseAmount(intent.Amount)
		if amt != nil && amt.IsZero() {
			return nil, walleterrors.NewFieldError("amount", walleterrors.ErrMsgInvalidAmount)
		}
		return nil, walleterrors.NewFieldError("amount", walleterrors.ErrMsgAmountExceeds)
	}

	payload := crypto.Payload(intent.Sender, intent.Receiver, intent.Amount)
	digest := crypto.Digest(payload)

	signStart := time.Now()
	sigHex, err := crypto.Sign(digest, privKeyHex)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKeyMaterial) {
			return nil, walleterrors.NewError(walleterrors.ErrCodeCrypto, walleterrors.ErrMsgInvalidKeyMaterial)
		}
		return nil, walleterrors.NewError(walleterrors.ErrCodeCrypto, walleterrors.ErrMsgSigningFailed)
	}

	// Self verify before anything leaves the process.
	pub, err := crypto.PublicKeyFromPrivate(privKeyHex)
	if err != nil || !crypto.Verify(digest, sigHex, pub) {
		return nil, walleterrors.NewError(walleterrors.ErrCodeCrypto, walleterrors.ErrMsgSigningFailed)
	}
	monitoring.RecordSigningDuration(time.Since(signStart))

	signed := types.SignedTransaction{
		Sender:    intent.Sender,
		Receiver:  intent.Receiver,
		Amount:    intent.Amount,
		Signature: sigHex,
		PIN:       intent.PIN,
	}

	if p.onSending != nil {
		p.onSending()
	}

	monitoring.IncreaseSubmittedTxCount()
	submitStart := time.Now()
	resp, err := p.gw.SubmitTransaction(ctx, signed)
	monitoring.RecordSubmitDuration(time.Since(submitStart))
	if err != nil {
		return nil, err
	}

	monitoring.IncreaseConfirmedTxCount()
	logx.Info("PIPELINE", "Transaction accepted, hash=", resp.TxHash)
	return &Result{TxHash: resp.TxHash, Status: resp.Status}, nil
}
