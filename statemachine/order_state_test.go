package statemachine

import (
	"errors"
	"strings"
	"testing"

	"restaurant-api/models"
)

type edge struct{ from, to models.OrderStatus }

func allPairs() []edge {
	var out []edge
	for _, from := range models.OrderStatuses {
		for _, to := range models.OrderStatuses {
			out = append(out, edge{from, to})
		}
	}
	return out
}

func TestCanTransition_Cook(t *testing.T) {
	allowed := map[edge]bool{
		{models.StatusPending, models.StatusInProgress}:   true,
		{models.StatusInProgress, models.StatusCompleted}: true,
	}
	for _, e := range allPairs() {
		err := CanTransition(e.from, e.to, models.RoleCook)
		if allowed[e] && err != nil {
			t.Errorf("cook %s -> %s: unexpected error %v", e.from, e.to, err)
		}
		if !allowed[e] && err == nil {
			t.Errorf("cook %s -> %s: expected rejection", e.from, e.to)
		}
	}
}

func TestCanTransition_Waiter(t *testing.T) {
	for _, e := range allPairs() {
		want := e.to == models.StatusCancelled ||
			(e.from == models.StatusPending && e.to == models.StatusInProgress)
		err := CanTransition(e.from, e.to, models.RoleWaiter)
		if want != (err == nil) {
			t.Errorf("waiter %s -> %s: allowed=%v, err=%v", e.from, e.to, want, err)
		}
	}
}

func TestCanTransition_Admin(t *testing.T) {
	for _, e := range allPairs() {
		if err := CanTransition(e.from, e.to, models.RoleAdmin); err != nil {
			t.Errorf("admin %s -> %s: unexpected error %v", e.from, e.to, err)
		}
	}
}

func TestCanTransition_UnknownRoleOrStatus(t *testing.T) {
	if err := CanTransition(models.StatusPending, models.StatusInProgress, "manager"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
	if err := CanTransition(models.StatusPending, "served", models.RoleAdmin); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}

func TestTransitionErrorNamesRoleAndEdge(t *testing.T) {
	err := CanTransition(models.StatusCompleted, models.StatusInProgress, models.RoleCook)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	msg := err.Error()
	for _, want := range []string{"completed", "in_progress", "cook"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not mention %q", msg, want)
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	got := ValidTransitionsFrom(models.StatusPending, models.RoleCook)
	if len(got) != 1 || got[0] != models.StatusInProgress {
		t.Fatalf("cook from pending: got %v", got)
	}
	if got := ValidTransitionsFrom(models.StatusCompleted, models.RoleCook); len(got) != 0 {
		t.Fatalf("cook from completed: expected none, got %v", got)
	}
	if got := ValidTransitionsFrom(models.StatusCompleted, models.RoleWaiter); len(got) != 1 || got[0] != models.StatusCancelled {
		t.Fatalf("waiter from completed: got %v", got)
	}
	if got := ValidTransitionsFrom(models.StatusPending, models.RoleAdmin); len(got) != 3 {
		t.Fatalf("admin from pending: got %v", got)
	}
}

func TestGetAllTransitions(t *testing.T) {
	counts := map[models.UserRole]int{}
	for _, tr := range GetAllTransitions() {
		counts[tr.Role]++
	}
	// admin: 4 states x 3 others; cook: 2; waiter: 3 into cancelled + pending->in_progress
	if counts[models.RoleAdmin] != 12 || counts[models.RoleCook] != 2 || counts[models.RoleWaiter] != 4 {
		t.Fatalf("unexpected edge counts: %v", counts)
	}
}
