package subdomain_test

import (
	"regexp"
	"testing"

	"github.com/negocio360/platform/business/types/subdomain"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name         string
		businessName string
		want         string
	}{
		{"strips punctuation and spaces", "Acme Corp!!", "acmecorp"},
		{"lowercases", "OFICINA SILVA", "oficinasilva"},
		{"keeps digits", "Auto Center 24h", "autocenter24h"},
		{"truncates to 20", "a very long business name indeed ltd", "averylongbusinessnam"},
		{"accents stripped", "Padaria São João", "padariasojoo"},
		{"empty falls back", "", "empresa"},
		{"only symbols falls back", "!!! ???", "empresa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subdomain.Derive(tt.businessName)
			if got.String() != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.businessName, got, tt.want)
			}
		})
	}
}

func TestDeriveShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]{1,20}$`)

	names := []string{"Acme Corp!!", "X", "123 Motors", "çãé", "a b c d e f g h i j k l m"}
	for _, n := range names {
		got := subdomain.Derive(n)
		if !shape.MatchString(got.String()) {
			t.Errorf("Derive(%q) = %q does not match %s", n, got, shape)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	base := subdomain.Derive("Acme Corp!!")

	if got := base.WithSuffix(1).String(); got != "acmecorp1" {
		t.Errorf("WithSuffix(1) = %q, want %q", got, "acmecorp1")
	}
	if got := base.WithSuffix(42).String(); got != "acmecorp42" {
		t.Errorf("WithSuffix(42) = %q, want %q", got, "acmecorp42")
	}
}

func TestParse(t *testing.T) {
	if _, err := subdomain.Parse("acmecorp1"); err != nil {
		t.Errorf("Parse(acmecorp1): %v", err)
	}
	for _, bad := range []string{"", "Acme", "acme corp", "acme-corp", "aaaaaaaaaaaaaaaaaaaaa"} {
		if _, err := subdomain.Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}
