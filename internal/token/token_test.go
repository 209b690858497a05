package token

import (
	"errors"
	"strings"
	"testing"
)

func TestIssue_Deterministic(t *testing.T) {
	spec := Spec{Role: "viewer", Secret: "s", ChannelID: "RIGowner", OpaqueID: "A12345"}
	a, err := Issue(spec)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, err := Issue(spec)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a != b {
		t.Fatalf("identical specs produced different credentials:\n%s\n%s", a, b)
	}
	if parts := strings.Split(a, "."); len(parts) != 3 {
		t.Fatalf("expected three-part compact token, got %d parts", len(parts))
	}
}

func TestIssue_SecretOnlyChangesSignature(t *testing.T) {
	spec := Spec{Role: "viewer", Secret: "s1", ChannelID: "c", UserID: "u"}
	a, err := Issue(spec)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	spec.Secret = "s2"
	b, err := Issue(spec)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a == b {
		t.Fatal("different secrets produced identical credentials")
	}
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	if pa[0] != pb[0] || pa[1] != pb[1] {
		t.Fatal("header/payload should not depend on the secret")
	}
	if pa[2] == pb[2] {
		t.Fatal("signature should depend on the secret")
	}

	ca, err := Decode(a)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cb, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []string{"role", "channel_id", "user_id"} {
		if ca[k] != cb[k] {
			t.Fatalf("claim %q differs: %v vs %v", k, ca[k], cb[k])
		}
	}
}

func TestIssue_SubjectClaims(t *testing.T) {
	linked, err := Issue(Spec{Role: "broadcaster", Secret: "s", ChannelID: "c", UserID: "u1"})
	if err != nil {
		t.Fatalf("issue linked: %v", err)
	}
	claims, err := Decode(linked)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims["user_id"] != "u1" {
		t.Fatalf("missing user_id claim: %v", claims)
	}
	if _, ok := claims["opaque_user_id"]; ok {
		t.Fatalf("linked credential must not carry opaque_user_id: %v", claims)
	}

	unlinked, err := Issue(Spec{Role: "viewer", Secret: "s", ChannelID: "c", OpaqueID: "A1"})
	if err != nil {
		t.Fatalf("issue unlinked: %v", err)
	}
	claims, err = Decode(unlinked)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims["opaque_user_id"] != "A1" {
		t.Fatalf("missing opaque_user_id claim: %v", claims)
	}
	if _, ok := claims["user_id"]; ok {
		t.Fatalf("unlinked credential must not carry user_id: %v", claims)
	}
}

func TestIssue_InvalidSpec(t *testing.T) {
	cases := []Spec{
		{Role: "viewer", Secret: "", ChannelID: "c", UserID: "u"},
		{Role: "viewer", Secret: "s", ChannelID: "c"},
		{Role: "viewer", Secret: "s", ChannelID: "c", UserID: "u", OpaqueID: "o"},
	}
	for i, spec := range cases {
		if _, err := Issue(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("case %d: expected ErrInvalidSpec, got %v", i, err)
		}
	}
}

func TestVerify(t *testing.T) {
	cred, err := Issue(Spec{Role: "viewer", Secret: "s", ChannelID: "c", UserID: "u"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := Verify(cred, "s")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["channel_id"] != "c" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if _, err := Verify(cred, "wrong"); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}
