package widepay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:     baseURL,
		WalletID:    "wallet-1",
		WalletToken: "token-abc",
	}, nil)
}

func TestCreateChargeSendsSignedFormRequest(t *testing.T) {
	var gotAuthID, gotAuthToken, gotSDK, gotForma string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthID, gotAuthToken, _ = r.BasicAuth()
		gotSDK = r.Header.Get("WP-API")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForma = r.PostFormValue("forma")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sucesso":true,"cobranca":{"id":"ch_1","status":"Aguardando","link":"https://pay.example.com/ch_1"}}`))
	}))
	defer srv.Close()

	resp := newTestClient(t, srv.URL).CreateCharge(context.Background(), ChargeParams{
		Form:       FormCard,
		Payer:      "Maria Silva",
		PersonType: PersonNatural,
		CPF:        "52998224725",
		Items:      []LineItem{{Description: "101", Value: "20.00"}},
	})

	if gotAuthID != "wallet-1" || gotAuthToken != "token-abc" {
		t.Fatalf("expected basic auth credentials, got %q/%q", gotAuthID, gotAuthToken)
	}
	if gotSDK != "SDK-Go" {
		t.Fatalf("expected WP-API header, got %q", gotSDK)
	}
	if gotForma != FormCard {
		t.Fatalf("expected forma %q, got %q", FormCard, gotForma)
	}
	if resp.Status() != "200" {
		t.Fatalf("expected status 200, got %q", resp.Status())
	}
	if len(resp.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", resp.Errors())
	}
	body, ok := resp.Body().(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", resp.Body())
	}
	if _, ok := body["cobranca"]; !ok {
		t.Fatalf("expected cobranca in body, got %v", body)
	}
}

func TestNotificationChargePostsID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotID = r.PostFormValue("id")
		w.Write([]byte(`{"cobranca":{"id":"ch_1","status":"Recebido","valor":"20.00"}}`))
	}))
	defer srv.Close()

	resp := newTestClient(t, srv.URL).NotificationCharge(context.Background(), "notif-9")

	if gotID != "notif-9" {
		t.Fatalf("expected notification id posted, got %q", gotID)
	}
	if resp.Status() != "200" {
		t.Fatalf("expected status 200, got %q", resp.Status())
	}
}

func TestNonSuccessStatusIsNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"msg":"bad cpf"}]}`))
	}))
	defer srv.Close()

	resp := newTestClient(t, srv.URL).CreateCharge(context.Background(), ChargeParams{})

	if resp.Status() != "422" {
		t.Fatalf("expected status 422, got %q", resp.Status())
	}
	errs := resp.Errors()
	if len(errs) != 1 || errs[0] != "bad cpf" {
		t.Fatalf("expected processor error forwarded, got %v", errs)
	}
}

func TestTransportFailureYieldsSyntheticResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	resp := newTestClient(t, srv.URL).CreateCharge(context.Background(), ChargeParams{})

	if resp.Status() != "500" {
		t.Fatalf("expected synthetic status 500, got %q", resp.Status())
	}
	if len(resp.Errors()) != 1 || resp.Errors()[0] != TransportErrorMessage {
		t.Fatalf("expected single transport error, got %v", resp.Errors())
	}
}

func TestGetBodyTravelsAsQueryString(t *testing.T) {
	var gotQuery, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("id")
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body := url.Values{}
	body.Set("id", "42")
	client.send(ctx, "recebimentos/cobrancas", body, http.MethodGet)

	if gotQuery != "42" {
		t.Fatalf("expected id in query string, got %q", gotQuery)
	}
	if gotBody != "" {
		t.Fatalf("expected empty request body, got %q", gotBody)
	}
}
