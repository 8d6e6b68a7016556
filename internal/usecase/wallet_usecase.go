package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/infrastructure/metrics"
)

// WalletUseCase orchestrates deposits and transfers: it validates requests,
// drives the atomic balance mutation and appends the history records.
//
// A logical transfer is two separately-committed phases: the atomic two-row
// balance mutation, then the log appends. The sender-side append failure is
// surfaced as domain.ErrRecordWrite without rolling the balances back; the
// recipient-side append is fire-and-forget. AtomicSentRecord folds the
// sender-side append into the balance transaction and closes that window
// for the sender's history.
type WalletUseCase struct {
	balanceRepo      BalanceRepository
	log              TransactionLog
	idGen            IDGenerator
	metrics          *metrics.Metrics
	logger           zerolog.Logger
	atomicSentRecord bool
}

// WalletConfig holds dependencies for WalletUseCase.
type WalletConfig struct {
	BalanceRepo BalanceRepository
	Log         TransactionLog
	IDGen       IDGenerator
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
	// AtomicSentRecord appends the sender's TRANSFER_SENT record inside the
	// balance transaction instead of as a second write.
	AtomicSentRecord bool
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(cfg WalletConfig) *WalletUseCase {
	return &WalletUseCase{
		balanceRepo:      cfg.BalanceRepo,
		log:              cfg.Log,
		idGen:            cfg.IDGen,
		metrics:          cfg.Metrics,
		logger:           cfg.Logger,
		atomicSentRecord: cfg.AtomicSentRecord,
	}
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Description string
	Amount      decimal.Decimal
}

// Deposit credits an account and appends a DEPOSIT record. The credit uses
// the store's atomic increment, so no sufficiency check is involved.
func (uc *WalletUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.TransactionRecord, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountID(input.AccountID); err != nil {
		return nil, err
	}

	start := time.Now()

	newBalance, err := uc.balanceRepo.Deposit(ctx, input.AccountID, input.Amount)
	if err != nil {
		uc.countError("deposit", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsCreated.Inc()
		uc.metrics.DepositDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.Debug().
		Str("account_id", input.AccountID).
		Str("amount", input.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("deposit committed")

	record := &domain.TransactionRecord{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Kind:        domain.RecordDeposit,
		Amount:      input.Amount,
		Description: input.Description,
	}

	// The credit has committed; an append failure here only leaves the
	// history momentarily incomplete.
	if err := uc.log.Append(ctx, record); err != nil {
		uc.countError("deposit", domain.ErrRecordWrite)
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordWrite, err)
	}

	return record, nil
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	Sender      string
	Recipient   string
	Description string
	Amount      decimal.Decimal
}

// Transfer moves funds between two accounts and returns the sender-side
// TRANSFER_SENT record.
func (uc *WalletUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransactionRecord, error) {
	request := domain.TransferRequest{
		Sender:    input.Sender,
		Recipient: input.Recipient,
		Amount:    input.Amount,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountID(input.Sender); err != nil {
		return nil, err
	}

	sentRecord := &domain.TransactionRecord{
		ID:           uc.idGen.Generate(),
		AccountID:    input.Sender,
		Counterparty: input.Recipient,
		Kind:         domain.RecordTransferSent,
		Amount:       input.Amount,
		Description:  input.Description,
	}

	var atomicRecord *domain.TransactionRecord
	if uc.atomicSentRecord {
		atomicRecord = sentRecord
	}

	start := time.Now()

	balances, err := uc.balanceRepo.Transfer(ctx, input.Sender, input.Recipient, input.Amount, atomicRecord)
	if err != nil {
		uc.countError("transfer", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := input.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
	}

	uc.logger.Debug().
		Str("sender", input.Sender).
		Str("recipient", input.Recipient).
		Str("amount", input.Amount.String()).
		Str("sender_balance", balances.Sender.String()).
		Msg("transfer committed")

	if !uc.atomicSentRecord {
		if err := uc.log.Append(ctx, sentRecord); err != nil {
			uc.countError("transfer", domain.ErrRecordWrite)
			return nil, fmt.Errorf("%w: %s", domain.ErrRecordWrite, err)
		}
	}

	uc.appendReceivedRecord(ctx, input)

	return sentRecord, nil
}

// appendReceivedRecord writes the recipient's TRANSFER_RECEIVED record as a
// detached best-effort append. A failure is logged, never surfaced: the
// recipient's balance is already credited, only their history under-reports
// until a later append succeeds.
func (uc *WalletUseCase) appendReceivedRecord(ctx context.Context, input TransferInput) {
	record := &domain.TransactionRecord{
		ID:           uc.idGen.Generate(),
		AccountID:    input.Recipient,
		Counterparty: input.Sender,
		Kind:         domain.RecordTransferReceived,
		Amount:       input.Amount,
		Description:  input.Description,
	}

	go func() {
		appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ReceivedAppendTimeout)
		defer cancel()

		if err := uc.log.Append(appendCtx, record); err != nil {
			uc.countError("transfer_received_append", err)
			uc.logger.Warn().
				Err(err).
				Str("recipient", input.Recipient).
				Str("sender", input.Sender).
				Str("amount", input.Amount.String()).
				Msg("recipient history append failed, balance already credited")
		}
	}()
}

// GetBalance returns the current balance of an account, zero if the account
// has never been touched.
func (uc *WalletUseCase) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return decimal.Zero, err
	}

	return uc.balanceRepo.GetBalance(ctx, accountID)
}

// InitializeAccount idempotently creates a zero-balance row for an account.
func (uc *WalletUseCase) InitializeAccount(ctx context.Context, accountID string) (*domain.Balance, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	return uc.balanceRepo.EnsureInitialized(ctx, accountID)
}

// ListTransactionsInput represents input for listing transaction records.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions returns an account's records in store arrival order.
// Display order is the caller's concern, see domain.SortRecordsNewestFirst.
func (uc *WalletUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.TransactionRecord, error) {
	if err := domain.ValidateAccountID(input.AccountID); err != nil {
		return nil, err
	}

	if input.Limit <= 0 {
		input.Limit = 50
	}

	if input.Limit > 500 {
		input.Limit = 500
	}

	return uc.log.List(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *WalletUseCase) countError(operation string, err error) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.OperationErrors.WithLabelValues(operation, errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, domain.ErrInvalidRecipient):
		return "invalid_recipient"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrRecordWrite):
		return "record_write"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	default:
		return "internal"
	}
}
