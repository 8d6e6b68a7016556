package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/adapter/repository/postgres"
	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/usecase"
	"github.com/walletd/walletd/tests/testutil"
)

func waitForRecords(t *testing.T, ctx context.Context, walletUC *usecase.WalletUseCase, accountID string, want int) []*domain.TransactionRecord {
	t.Helper()

	var records []*domain.TransactionRecord
	var err error
	for range 50 {
		records, err = walletUC.ListTransactions(ctx, usecase.ListTransactionsInput{AccountID: accountID})
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(records) >= want {
			return records
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("expected %d records for %s, got %d", want, accountID, len(records))
	return nil
}

func TestTransferMovesFunds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC, _ := buildWallet(testDB, false)

	sender := testutil.GenerateID()
	recipient := testutil.GenerateID()

	if _, err := walletUC.Deposit(ctx, usecase.DepositInput{
		AccountID: sender,
		Amount:    decimal.NewFromInt(1000),
	}); err != nil {
		t.Fatalf("failed to deposit: %v", err)
	}

	record, err := walletUC.Transfer(ctx, usecase.TransferInput{
		Sender:      sender,
		Recipient:   recipient,
		Amount:      decimal.NewFromInt(300),
		Description: "rent",
	})
	if err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}

	if record.Kind != domain.RecordTransferSent {
		t.Errorf("expected TRANSFER_SENT record, got %s", record.Kind)
	}
	if record.Counterparty != recipient {
		t.Errorf("expected counterparty %s, got %s", recipient, record.Counterparty)
	}

	senderBalance, err := walletUC.GetBalance(ctx, sender)
	if err != nil {
		t.Fatalf("failed to get sender balance: %v", err)
	}
	if !senderBalance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected sender balance 700, got %s", senderBalance)
	}

	recipientBalance, err := walletUC.GetBalance(ctx, recipient)
	if err != nil {
		t.Fatalf("failed to get recipient balance: %v", err)
	}
	if !recipientBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected recipient balance 300, got %s", recipientBalance)
	}

	// The recipient-side record is appended asynchronously.
	records := waitForRecords(t, ctx, walletUC, recipient, 1)
	if records[0].Kind != domain.RecordTransferReceived {
		t.Errorf("expected TRANSFER_RECEIVED record, got %s", records[0].Kind)
	}
	if records[0].Counterparty != sender {
		t.Errorf("expected counterparty %s, got %s", sender, records[0].Counterparty)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC, _ := buildWallet(testDB, false)

	sender := testutil.GenerateID()
	recipient := testutil.GenerateID()

	if _, err := walletUC.Deposit(ctx, usecase.DepositInput{
		AccountID: sender,
		Amount:    decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("failed to deposit: %v", err)
	}

	_, err := walletUC.Transfer(ctx, usecase.TransferInput{
		Sender:    sender,
		Recipient: recipient,
		Amount:    decimal.NewFromInt(100),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Nothing moved
	senderBalance, _ := walletUC.GetBalance(ctx, sender)
	if !senderBalance.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected sender balance unchanged at 50, got %s", senderBalance)
	}
	recipientBalance, _ := walletUC.GetBalance(ctx, recipient)
	if !recipientBalance.IsZero() {
		t.Errorf("expected recipient balance 0, got %s", recipientBalance)
	}
}

func TestTransferFromUntouchedAccountFails(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC, _ := buildWallet(testDB, false)

	_, err := walletUC.Transfer(ctx, usecase.TransferInput{
		Sender:    testutil.GenerateID(),
		Recipient: testutil.GenerateID(),
		Amount:    decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestTransferAtomicSentRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC, _ := buildWallet(testDB, true)

	sender := testutil.GenerateID()
	recipient := testutil.GenerateID()

	if _, err := walletUC.Deposit(ctx, usecase.DepositInput{
		AccountID: sender,
		Amount:    decimal.NewFromInt(200),
	}); err != nil {
		t.Fatalf("failed to deposit: %v", err)
	}

	if _, err := walletUC.Transfer(ctx, usecase.TransferInput{
		Sender:    sender,
		Recipient: recipient,
		Amount:    decimal.NewFromInt(80),
	}); err != nil {
		t.Fatalf("failed to transfer: %v", err)
	}

	records, err := walletUC.ListTransactions(ctx, usecase.ListTransactionsInput{AccountID: sender})
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}

	sent := 0
	for _, r := range records {
		if r.Kind == domain.RecordTransferSent {
			sent++
		}
	}
	if sent != 1 {
		t.Errorf("expected exactly one TRANSFER_SENT record, got %d", sent)
	}
}

func TestConservationAfterMixedWorkload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	walletUC, _ := buildWallet(testDB, false)
	ledgerUC := usecase.NewLedgerUseCase(postgres.NewLedgerRepository(testDB.Pool))

	a := testutil.GenerateID()
	b := testutil.GenerateID()
	c := testutil.GenerateID()

	for _, deposit := range []struct {
		account string
		amount  int64
	}{
		{a, 500}, {b, 200}, {a, 100},
	} {
		if _, err := walletUC.Deposit(ctx, usecase.DepositInput{
			AccountID: deposit.account,
			Amount:    decimal.NewFromInt(deposit.amount),
		}); err != nil {
			t.Fatalf("failed to deposit: %v", err)
		}
	}

	for _, transfer := range []struct {
		from, to string
		amount   int64
	}{
		{a, b, 150}, {b, c, 75}, {a, c, 50},
	} {
		if _, err := walletUC.Transfer(ctx, usecase.TransferInput{
			Sender:    transfer.from,
			Recipient: transfer.to,
			Amount:    decimal.NewFromInt(transfer.amount),
		}); err != nil {
			t.Fatalf("failed to transfer: %v", err)
		}
	}

	report, err := ledgerUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("failed to check consistency: %v", err)
	}

	if !report.Consistent {
		t.Errorf("expected ledger to be consistent, drift %s", report.Drift)
	}
	if !report.TotalBalance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected total balance 800, got %s", report.TotalBalance)
	}
	if !report.TotalDeposited.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected total deposited 800, got %s", report.TotalDeposited)
	}
}

func TestConsistencyDetectsDrift(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := usecase.NewLedgerUseCase(postgres.NewLedgerRepository(testDB.Pool))

	// A balance with no matching deposit record is exactly the kind of
	// mutation the conservation check exists to catch.
	testDB.SeedBalance(ctx, testutil.GenerateID(), decimal.NewFromInt(33))

	report, err := ledgerUC.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("failed to check consistency: %v", err)
	}

	if report.Consistent {
		t.Error("expected drift to be detected")
	}
	if !report.Drift.Equal(decimal.NewFromInt(-33)) {
		t.Errorf("expected drift -33, got %s", report.Drift)
	}
}
