package auth

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{UserID: 7, Username: "rahim", IsStaff: true, SessionID: 3})

	a, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected actor in context")
	}
	if a.UserID != 7 || a.Username != "rahim" || !a.IsStaff || a.SessionID != 3 {
		t.Errorf("actor = %+v", a)
	}
	if UserID(ctx) != 7 {
		t.Errorf("UserID = %d, want 7", UserID(ctx))
	}
	if !IsStaff(ctx) {
		t.Error("IsStaff = false, want true")
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no actor")
	}
	if UserID(ctx) != 0 {
		t.Errorf("UserID = %d, want 0", UserID(ctx))
	}
	if IsStaff(ctx) {
		t.Error("IsStaff = true, want false")
	}
}
