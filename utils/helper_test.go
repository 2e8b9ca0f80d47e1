package utils

import (
	"context"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "nurse.one+tag@clinic-hq.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "plain", "a@b", "@clinic.org", "a b@clinic.org"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("+12025550147", CountryCode); err != nil {
		t.Errorf("valid number rejected: %v", err)
	}
	if err := ValidatePhoneNumber("202-555-0147", CountryCode); err != nil {
		t.Errorf("national format rejected: %v", err)
	}
	if err := ValidatePhoneNumber("12", CountryCode); err == nil {
		t.Error("short number accepted")
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("swordfish")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(hashed) == "swordfish" {
		t.Fatal("password not hashed")
	}
	if err := ComparePassword(string(hashed), "swordfish"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := ComparePassword(string(hashed), "tuna"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestValidateStruct_UsesBindingTag(t *testing.T) {
	type sample struct {
		Name  string `binding:"required"`
		Count int    `binding:"gt=0"`
	}

	if err := ValidateStruct(&sample{Name: "ok", Count: 1}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}
	if err := ValidateStruct(&sample{Count: 1}); err == nil {
		t.Error("missing required field accepted")
	}
	if err := ValidateStruct(&sample{Name: "ok", Count: 0}); err == nil {
		t.Error("non-positive count accepted")
	}
}

func TestContextHelpersRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := GetUserIdFromContext(ctx); ok {
		t.Error("empty context reported a user id")
	}

	ctx = SetUserIdInContext(ctx, 9)
	ctx = SetUserNameInContext(ctx, "frontdesk")
	ctx = SetCorrelationIdInContext(ctx, "corr-9")
	ctx = SetIPAddressInContext(ctx, "10.0.0.1")
	ctx = SetUserAgentInContext(ctx, "hms-desktop/1.0")

	if id, ok := GetUserIdFromContext(ctx); !ok || id != 9 {
		t.Errorf("user id = %d/%v, want 9/true", id, ok)
	}
	if name, ok := GetUserNameFromContext(ctx); !ok || name != "frontdesk" {
		t.Errorf("user name = %q/%v", name, ok)
	}
	if corr, ok := GetCorrelationIdFromContext(ctx); !ok || corr != "corr-9" {
		t.Errorf("correlation id = %q/%v", corr, ok)
	}
	if ip, ok := GetIPAddressFromContext(ctx); !ok || ip != "10.0.0.1" {
		t.Errorf("ip = %q/%v", ip, ok)
	}
	if ua, ok := GetUserAgentFromContext(ctx); !ok || ua != "hms-desktop/1.0" {
		t.Errorf("user agent = %q/%v", ua, ok)
	}
}
