package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid argument", invalidArgument("bad"), KindInvalidArgument},
		{"permission denied", permissionDenied("no"), KindPermissionDenied},
		{"not found", notFound("gone"), KindNotFound},
		{"failed precondition", failedPrecondition("conflict"), KindFailedPrecondition},
		{"plain error", errors.New("boom"), KindInternal},
		{"nil-ish wrapped", fmt.Errorf("outer: %w", notFound("inner")), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessagePreserved(t *testing.T) {
	err := failedPrecondition("a verification request for this check-in is already pending")
	if err.Error() != "a verification request for this check-in is already pending" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
