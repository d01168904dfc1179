package api

import (
	"strings"
	"testing"
)

func TestSecureCookieCodecRoundTrip(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}

	sealed, err := codec.seal(authCookiePurpose, []byte("header.payload.signature"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !strings.HasPrefix(sealed, secureCookieVersion+".") {
		t.Fatalf("expected versioned value, got %q", sealed)
	}
	if strings.Contains(sealed, "payload") {
		t.Fatalf("expected opaque value, got %q", sealed)
	}

	opened, err := codec.open(authCookiePurpose, sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(opened) != "header.payload.signature" {
		t.Fatalf("unexpected plaintext %q", opened)
	}

	again, err := codec.seal(authCookiePurpose, []byte("header.payload.signature"))
	if err != nil {
		t.Fatalf("seal again: %v", err)
	}
	if again == sealed {
		t.Fatal("expected a fresh nonce per seal")
	}
}

func TestSecureCookieCodecRejectsForeignValues(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	other, err := newSecureCookieCodec([]byte("another-secret-key-0123456789-abcdefghij"))
	if err != nil {
		t.Fatalf("init other codec: %v", err)
	}
	sealed, err := codec.seal(authCookiePurpose, []byte("token"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	tampered := sealed[:len(sealed)-2] + "AA"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "BB"
	}

	cases := map[string]func() ([]byte, error){
		"wrong purpose": func() ([]byte, error) { return codec.open("flash", sealed) },
		"wrong key":     func() ([]byte, error) { return other.open(authCookiePurpose, sealed) },
		"tampered":      func() ([]byte, error) { return codec.open(authCookiePurpose, tampered) },
		"no version":    func() ([]byte, error) { return codec.open(authCookiePurpose, strings.TrimPrefix(sealed, "v1.")) },
		"empty":         func() ([]byte, error) { return codec.open(authCookiePurpose, "") },
		"short":         func() ([]byte, error) { return codec.open(authCookiePurpose, "v1.AAAA") },
	}
	for name, open := range cases {
		if _, err := open(); err == nil {
			t.Fatalf("%s: expected open to fail", name)
		}
	}
}

func TestSecureCookieCodecRequiresSecretAndPurpose(t *testing.T) {
	if _, err := newSecureCookieCodec(nil); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}
	if _, err := codec.seal(" ", []byte("token")); err == nil {
		t.Fatal("expected empty purpose to be rejected")
	}
}
