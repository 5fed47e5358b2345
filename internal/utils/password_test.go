package utils

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("password stored in the clear")
	}
	if err := CheckPassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("check with right password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("check with wrong password succeeded")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		username string
		email    string
		want     []string
	}{
		{
			name:     "acceptable",
			password: "tr0ub4dor&3x",
			username: "margaret",
			email:    "margaret@example.com",
		},
		{
			name:     "too short",
			password: "ab1",
			username: "margaret",
			email:    "margaret@example.com",
			want:     []string{"too short"},
		},
		{
			name:     "entirely numeric",
			password: "1234567890",
			username: "margaret",
			email:    "margaret@example.com",
			want:     []string{"entirely numeric"},
		},
		{
			name:     "contains username",
			password: "xmargaretx99",
			username: "margaret",
			email:    "m@example.com",
			want:     []string{"too similar"},
		},
		{
			name:     "contains email local part",
			password: "peggy.sue!42",
			username: "margaret",
			email:    "peggy.sue@example.com",
			want:     []string{"too similar"},
		},
		{
			name:     "username contains password",
			password: "margare",
			username: "margaret",
			email:    "m@example.com",
			want:     []string{"too short", "too similar"},
		},
		{
			name:     "similarity ignores case",
			password: "MARGARET-rules",
			username: "margaret",
			email:    "m@example.com",
			want:     []string{"too similar"},
		},
		{
			name:     "short attributes ignored",
			password: "abcdefgh",
			username: "abc",
			email:    "ab@example.com",
		},
		{
			name:     "short and numeric stack",
			password: "123",
			username: "margaret",
			email:    "margaret@example.com",
			want:     []string{"too short", "entirely numeric"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidatePassword(tc.password, tc.username, tc.email)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d messages %v, want %d", len(got), got, len(tc.want))
			}
			for i, frag := range tc.want {
				if !strings.Contains(got[i], frag) {
					t.Fatalf("message %d = %q, want it to mention %q", i, got[i], frag)
				}
			}
		})
	}
}

func TestEmailLocalPart(t *testing.T) {
	if got := emailLocalPart("sam@example.com"); got != "sam" {
		t.Fatalf("got %q", got)
	}
	if got := emailLocalPart("no-at-sign"); got != "no-at-sign" {
		t.Fatalf("got %q", got)
	}
}
