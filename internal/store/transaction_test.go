package store

import (
	"testing"

	"github.com/dukerupert/chorebank/internal/model"
)

func TestTransactionAppendAndBalance(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)

	if _, err := ts.Append(child.ID, 500, model.KindTaskApproved, "Task approved: Dishes", "2026-08-29"); err != nil {
		t.Fatalf("append credit: %v", err)
	}
	if _, err := ts.Append(child.ID, -250, model.KindTaskMissed, "Missed task penalty: Laundry", "2026-08-30"); err != nil {
		t.Fatalf("append debit: %v", err)
	}

	balance, err := ts.BalanceFor(child.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 250 {
		t.Errorf("balance = %d, want 250", balance)
	}

	txns, err := ts.ListByChild(child.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
}

func TestBalanceForEmptyLedger(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)

	balance, err := ts.BalanceFor(child.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestAppendAllowanceOncePerDay(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 20000, true)

	credited, err := ts.AppendAllowance(child.ID, 5000, "Weekly allowance - 2026-08-30", "2026-08-30")
	if err != nil {
		t.Fatalf("append allowance: %v", err)
	}
	if !credited {
		t.Fatal("first allowance should credit")
	}

	credited, err = ts.AppendAllowance(child.ID, 5000, "Weekly allowance - 2026-08-30", "2026-08-30")
	if err != nil {
		t.Fatalf("second append allowance: %v", err)
	}
	if credited {
		t.Error("same-day allowance rerun should be a no-op")
	}

	balance, _ := ts.BalanceFor(child.ID)
	if balance != 5000 {
		t.Errorf("balance = %d, want 5000", balance)
	}

	// A different day credits again.
	credited, err = ts.AppendAllowance(child.ID, 5000, "Weekly allowance - 2026-09-06", "2026-09-06")
	if err != nil {
		t.Fatalf("next-week allowance: %v", err)
	}
	if !credited {
		t.Error("a later day should credit")
	}
}

func TestAllowanceUniquenessDoesNotBlockOtherKinds(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)

	if _, err := ts.Append(child.ID, 500, model.KindTaskApproved, "a", "2026-08-30"); err != nil {
		t.Fatalf("first append: %v", err)
	}
	// Same child and day, different kind: allowed.
	if _, err := ts.Append(child.ID, 300, model.KindTaskApproved, "b", "2026-08-30"); err != nil {
		t.Fatalf("second append: %v", err)
	}
}

func TestLedgerIsAppendOnly(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 0, true)

	txn, err := ts.Append(child.ID, 500, model.KindTaskApproved, "Task approved: Dishes", "2026-08-30")
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := db.Exec(`UPDATE transactions SET amount_cents = 9999 WHERE id = ?`, txn.ID); err == nil {
		t.Error("update should be rejected by the append-only trigger")
	}
	if _, err := db.Exec(`DELETE FROM transactions WHERE id = ?`, txn.ID); err == nil {
		t.Error("delete should be rejected by the append-only trigger")
	}

	got, err := ts.GetByID(txn.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.AmountCents != 500 {
		t.Errorf("row changed despite triggers: %+v", got)
	}
}

func TestFamilyBalances(t *testing.T) {
	db := openTestDB(t)
	ts := NewTransactionStore(db)
	family := seedFamily(t, db)
	ada := seedChild(t, db, family.ID, "Ada", 0, true)
	ben := seedChild(t, db, family.ID, "Ben", 0, true)

	if _, err := ts.Append(ada.ID, 750, model.KindTaskApproved, "", "2026-08-30"); err != nil {
		t.Fatalf("append: %v", err)
	}

	balances, err := ts.FamilyBalances(family.ID)
	if err != nil {
		t.Fatalf("family balances: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	if balances[0].ChildName != "Ada" || balances[0].BalanceCents != 750 {
		t.Errorf("ada balance = %+v", balances[0])
	}
	if balances[1].ChildID != ben.ID || balances[1].BalanceCents != 0 {
		t.Errorf("ben balance = %+v", balances[1])
	}
}
