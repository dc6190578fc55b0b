package stepstore_test

import (
	"testing"
	"time"

	stepstore "github.com/dalemusser/stephub/internal/app/store/steps"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/dalemusser/stephub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Step{
		Title:       "Set up laptop",
		Description: "Install the standard toolchain",
		AssignedTo:  "alice",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Completed {
		t.Error("expected new step to be pending")
	}
	if created.CompletedAt != nil {
		t.Error("expected CompletedAt to be absent on a pending step")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_BlankTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Step{
		Title:       "   ",
		Description: "Has a description",
		AssignedTo:  "alice",
	})
	if httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing may be persisted on a rejected create.
	steps, err := store.List(ctx, stepstore.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("expected empty store after rejected create, got %d steps", len(steps))
	}
}

func TestStore_Create_TagOnlyTitleIsBlank(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Step{
		Title:       "<script>alert('x')</script>",
		Description: "desc",
		AssignedTo:  "alice",
	})
	if httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("expected validation error for markup-only title, got %v", err)
	}
}

func TestStore_Create_NormalizesAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Step{
		Title:       "Badge photo",
		Description: "Visit the front desk",
		AssignedTo:  "  Alice ",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.AssignedTo != "alice" {
		t.Errorf("AssignedTo: got %q, want %q", created.AssignedTo, "alice")
	}
}

func TestStore_List_FilterIsExactSubset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	fix.CreateStep(ctx, "A1", "alice")
	fix.CreateStep(ctx, "A2", "alice")
	fix.CreateStep(ctx, "B1", "bob")

	all, err := store.List(ctx, stepstore.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	filtered, err := store.List(ctx, stepstore.Filter{AssignedTo: "alice"})
	if err != nil {
		t.Fatalf("filtered List failed: %v", err)
	}

	want := 0
	for _, s := range all {
		if s.AssignedTo == "alice" {
			want++
		}
	}
	if len(filtered) != want {
		t.Errorf("filtered count: got %d, want %d", len(filtered), want)
	}
	for _, s := range filtered {
		if s.AssignedTo != "alice" {
			t.Errorf("filtered list contains foreign step %q assigned to %q", s.Title, s.AssignedTo)
		}
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStore_Update_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	step := fix.CreateStep(ctx, "Old title", "alice")

	title := "New title"
	updated, err := store.Update(ctx, step.ID, stepstore.Update{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "New title" {
		t.Errorf("Title: got %q, want %q", updated.Title, "New title")
	}
	if updated.Description != step.Description {
		t.Errorf("Description changed unexpectedly: got %q", updated.Description)
	}
	if updated.AssignedTo != "alice" {
		t.Errorf("AssignedTo changed unexpectedly: got %q", updated.AssignedTo)
	}
}

func TestStore_Update_BlankFieldRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	step := fix.CreateStep(ctx, "Keep me", "alice")

	blank := "   "
	_, err := store.Update(ctx, step.ID, stepstore.Update{Title: &blank})
	if httperr.KindOf(err) != httperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := store.GetByID(ctx, step.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Keep me" {
		t.Errorf("title changed after rejected update: got %q", got.Title)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	title := "anything"
	_, err := store.Update(ctx, primitive.NewObjectID(), stepstore.Update{Title: &title})
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStore_Complete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	step := fix.CreateStep(ctx, "Sign NDA", "alice")

	done, err := store.Complete(ctx, step.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !done.Completed {
		t.Error("expected step to be completed")
	}
	if done.CompletedAt == nil || done.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set with Completed")
	}
}

func TestStore_Complete_IdempotentRefreshesTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	step := fix.CreateStep(ctx, "Read handbook", "alice")

	first, err := store.Complete(ctx, step.ID)
	if err != nil {
		t.Fatalf("first Complete failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	second, err := store.Complete(ctx, step.ID)
	if err != nil {
		t.Fatalf("second Complete failed: %v", err)
	}
	if !second.Completed {
		t.Error("step must stay completed")
	}
	// Re-completing overwrites the timestamp; it never moves backwards.
	if second.CompletedAt.Before(*first.CompletedAt) {
		t.Errorf("CompletedAt went backwards: %v before %v", second.CompletedAt, first.CompletedAt)
	}
}

func TestStore_Complete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Complete(ctx, primitive.NewObjectID())
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	step := fix.CreateStep(ctx, "Temporary", "alice")

	if err := store.Delete(ctx, step.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, step.ID); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected step gone after delete, got %v", err)
	}
}

func TestStore_Delete_NotFoundLeavesStoreUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := stepstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	fix.CreateStep(ctx, "Survivor", "alice")

	err := store.Delete(ctx, primitive.NewObjectID())
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}

	steps, err := store.List(ctx, stepstore.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(steps) != 1 {
		t.Errorf("store changed by failed delete: got %d steps, want 1", len(steps))
	}
}

func TestParseID_Malformed(t *testing.T) {
	_, err := stepstore.ParseID("not-a-hex-id")
	if httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not-found error for malformed id, got %v", err)
	}
}
