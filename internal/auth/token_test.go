package auth

import (
	"testing"
	"time"
)

func testUser() *User {
	return &User{
		Email: "admin@vitalvida.ng",
		Role:  RoleCEO,
		Name:  "CEO - Vitalvida",
		Permissions: map[Panel]Capability{
			PanelAudit: {View: true, Override: true},
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("VITALVIDA_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	defer ResetSecretForTests()

	token, err := GenerateToken(testUser(), 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "admin@vitalvida.ng" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != RoleCEO {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv("VITALVIDA_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	defer ResetSecretForTests()

	for _, token := range []string{"", "not.a.token", "a.b"} {
		if _, err := ParseAndValidate(token); err == nil {
			t.Fatalf("expected rejection for %q", token)
		}
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	t.Setenv("VITALVIDA_AUTH_SECRET", "secret-one")
	ResetSecretForTests()
	token, err := GenerateToken(testUser(), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("VITALVIDA_AUTH_SECRET", "secret-two")
	ResetSecretForTests()
	defer ResetSecretForTests()
	if _, err := ParseAndValidate(token); err == nil {
		t.Fatalf("token signed with another secret must not validate")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("VITALVIDA_AUTH_SECRET", "")
	ResetSecretForTests()
	defer ResetSecretForTests()

	if _, err := GenerateToken(testUser(), time.Minute); err == nil {
		t.Fatalf("expected error without configured secret")
	}
}
