package store

import (
	"testing"

	"github.com/dukerupert/chorebank/internal/model"
)

func TestCreateFamilyCreatesSettings(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)

	if family.Name != "Testers" {
		t.Errorf("name = %q, want %q", family.Name, "Testers")
	}

	settings, err := NewSettingsStore(db).GetByFamily(family.ID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings == nil {
		t.Fatal("expected a default settings row for the new family")
	}
	if settings.WeeklyCloseWeekday != 0 {
		t.Errorf("weekly_close_weekday = %d, want 0", settings.WeeklyCloseWeekday)
	}
	if settings.PenaltyOnMiss {
		t.Error("penalty_on_miss should default to false")
	}
}

func TestGetFamilyNotFound(t *testing.T) {
	db := openTestDB(t)

	family, err := NewFamilyStore(db).GetFamilyByID(999)
	if err != nil {
		t.Fatalf("get family: %v", err)
	}
	if family != nil {
		t.Errorf("expected nil for missing family, got %+v", family)
	}
}

func TestCreateChildCreatesAccount(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)

	child := seedChild(t, db, family.ID, "Ada", 2000, true)

	if child.Role != model.RoleChild {
		t.Errorf("role = %q, want %q", child.Role, model.RoleChild)
	}
	if child.MonthlyAllowanceCents != 2000 {
		t.Errorf("monthly_allowance_cents = %d, want 2000", child.MonthlyAllowanceCents)
	}
	if !child.RewardsEnabled {
		t.Error("rewards_enabled should be true")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM child_accounts WHERE profile_id = ?`, child.ID).Scan(&count); err != nil {
		t.Fatalf("count accounts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 child account, got %d", count)
	}
}

func TestGetChildByIDIgnoresParents(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)

	parent, err := NewFamilyStore(db).CreateParent(family.ID, "Pat")
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	child, err := NewFamilyStore(db).GetChildByID(parent.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if child != nil {
		t.Errorf("parent profile should not resolve as a child, got %+v", child)
	}
}

func TestListChildrenByFamily(t *testing.T) {
	db := openTestDB(t)
	fs := NewFamilyStore(db)
	family := seedFamily(t, db)
	other := seedFamily(t, db)

	seedChild(t, db, family.ID, "Ada", 2000, true)
	seedChild(t, db, family.ID, "Ben", 1000, false)
	seedChild(t, db, other.ID, "Cleo", 500, true)

	if _, err := fs.CreateParent(family.ID, "Pat"); err != nil {
		t.Fatalf("create parent: %v", err)
	}

	children, err := fs.ListChildrenByFamily(family.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].DisplayName != "Ada" || children[1].DisplayName != "Ben" {
		t.Errorf("children out of order: %q, %q", children[0].DisplayName, children[1].DisplayName)
	}
}

func TestUpdateChildAccount(t *testing.T) {
	db := openTestDB(t)
	family := seedFamily(t, db)
	child := seedChild(t, db, family.ID, "Ada", 2000, true)

	updated, err := NewFamilyStore(db).UpdateChildAccount(child.ID, 4000, false)
	if err != nil {
		t.Fatalf("update child account: %v", err)
	}
	if updated.MonthlyAllowanceCents != 4000 {
		t.Errorf("monthly_allowance_cents = %d, want 4000", updated.MonthlyAllowanceCents)
	}
	if updated.RewardsEnabled {
		t.Error("rewards_enabled should be false after update")
	}
}
