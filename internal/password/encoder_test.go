package password

import (
	"errors"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

func TestEncoder_HashAndMatches(t *testing.T) {
	e := NewEncoder()

	digest, err := e.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if digest == "Passw0rd" {
		t.Fatal("digest should not equal the plain password")
	}

	if !e.Matches("Passw0rd", digest) {
		t.Error("Matches should succeed for the original password")
	}
	if e.Matches("wrong", digest) {
		t.Error("Matches should fail for a different password")
	}
}

func TestEncoder_HashIsSalted(t *testing.T) {
	e := NewEncoder()

	d1, err := e.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	d2, err := e.Hash("Passw0rd")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if d1 == d2 {
		t.Error("two hashes of the same password should differ (salt)")
	}
}

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr bool
	}{
		{"ポリシーを満たす", "Passw0rd", false},
		{"長いパスワードも有効", "VeryLongPassword123", false},
		{"8文字未満", "Pass1", true},
		{"数字なし", "Password", true},
		{"大文字なし", "passw0rd", true},
		{"空文字列", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePolicy(tt.plain)
			if tt.wantErr {
				var apiErr *model.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %v", err)
				}
				if apiErr.Code != model.ErrCodeInvalidPassword {
					t.Errorf("code = %q, want INVALID_PASSWORD", apiErr.Code)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
