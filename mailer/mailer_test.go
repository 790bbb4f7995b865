package mailer

import (
	"context"
	"strings"
	"testing"
)

func TestPasswordResetEmail(t *testing.T) {
	body, err := PasswordResetEmail("Trattoria", "http://localhost:5173", "abc123", "1 hour")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Trattoria", "http://localhost:5173/reset-password?token=abc123", "1 hour"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestPasswordResetEmail_EscapesRestaurantName(t *testing.T) {
	body, err := PasswordResetEmail("<script>", "http://x", "t", "1 hour")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("restaurant name was not escaped")
	}
}

func TestLogMailerNeverFails(t *testing.T) {
	if err := (Log{}).Send(context.Background(), "a@b.c", "hi", "<p>x</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
