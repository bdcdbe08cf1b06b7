package logger

import (
	"net/url"
	"testing"
)

func TestMaskAuthorization(t *testing.T) {
	got := MaskAuthorization("Bearer abcdef1234")
	want := "Bearer ****1234"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskCookie(t *testing.T) {
	got := MaskCookie("session=abcdef1234; other=xyz")
	want := "session=****1234; other=****xyz"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskJSON(t *testing.T) {
	input := map[string]any{
		"password": "hunter2",
		"token":    "abc12345",
		"nested": map[string]any{
			"api_key": "key_12345678",
		},
	}
	masked := MaskJSON(input)
	if masked["password"] != "****ter2" {
		t.Fatalf("expected masked password, got %v", masked["password"])
	}
	if masked["token"] != "****2345" {
		t.Fatalf("expected masked token, got %v", masked["token"])
	}
	nested, ok := masked["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map")
	}
	if nested["api_key"] != "****5678" {
		t.Fatalf("expected masked api_key, got %v", nested["api_key"])
	}
}

func TestMaskAuthorizationBasic(t *testing.T) {
	got := MaskAuthorization("Basic d2FsbGV0OnRva2Vu")
	want := "Basic ****a2Vu"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMaskFormBracketedKeys(t *testing.T) {
	values := url.Values{}
	values.Set("cliente", "Maria Silva")
	values.Set("cpf", "52998224725")
	values.Set("endereco[rua]", "Rua A")

	masked := MaskForm(values)
	if masked.Get("cpf") != "****4725" {
		t.Fatalf("expected masked cpf, got %q", masked.Get("cpf"))
	}
	if masked.Get("cliente") != "Maria Silva" {
		t.Fatalf("expected cliente untouched, got %q", masked.Get("cliente"))
	}
	if masked.Get("endereco[rua]") != "Rua A" {
		t.Fatalf("expected endereco untouched, got %q", masked.Get("endereco[rua]"))
	}
}
