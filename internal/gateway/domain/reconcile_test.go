package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/widepay/internal/widepay"
)

func chargeResponse(t *testing.T, body string) *widepay.Response {
	t.Helper()
	return widepay.Parse([]byte("HTTP/1.1 200 OK\n" + body))
}

func TestReconcileStatusTable(t *testing.T) {
	cases := []struct {
		processor string
		want      ChargeStatus
	}{
		{"Aguardando", StatusPending},
		{"Em análise", StatusPending},
		{"Estornado", StatusRefunded},
		{"Recebido", StatusApproved},
		{"Recebido manualmente", StatusApproved},
		{"Recusado", StatusDeclined},
		{"Cancelado", StatusDeclined},
		{"Contestado", StatusDeclined},
		{"Vencido", StatusVoid},
		{"Alguma novidade", StatusApproved},
	}
	for _, tc := range cases {
		body := fmt.Sprintf(`{"cobranca":{"id":"ch_1","status":%q,"valor":"20.00"}}`, tc.processor)
		tx := Reconcile(chargeResponse(t, body))
		if tx.Status != tc.want {
			t.Fatalf("status %q: expected %q, got %q", tc.processor, tc.want, tx.Status)
		}
		if tx.ProcessorStatus != tc.processor {
			t.Fatalf("expected processor status preserved, got %q", tx.ProcessorStatus)
		}
	}
}

func TestReconcileAbsentStatusIsApproved(t *testing.T) {
	tx := Reconcile(chargeResponse(t, `{"cobranca":{"id":"ch_1","valor":"20.00"}}`))
	if tx.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", tx.Status)
	}
}

func TestReconcileErrorsWinOverStatus(t *testing.T) {
	tx := Reconcile(chargeResponse(t, `{"errors":[{"msg":"bad token"}],"cobranca":{"status":"Recebido"}}`))
	if tx.Status != StatusError {
		t.Fatalf("expected error status, got %q", tx.Status)
	}
	if len(tx.Messages) != 1 || tx.Messages[0] != "bad token" {
		t.Fatalf("expected processor message, got %v", tx.Messages)
	}
	if tx.ProcessorStatus != "Recebido" {
		t.Fatalf("expected best-effort fields, got %q", tx.ProcessorStatus)
	}
}

func TestReconcileAmountDefaultsToZero(t *testing.T) {
	tx := Reconcile(chargeResponse(t, `{"cobranca":{"id":"ch_1","status":"Recebido"}}`))
	if !tx.Amount.Equal(decimal.Zero) {
		t.Fatalf("expected zero amount, got %s", tx.Amount)
	}
}

func TestReconcileNumericAmount(t *testing.T) {
	tx := Reconcile(chargeResponse(t, `{"cobranca":{"id":"ch_1","status":"Recebido","valor":19.9}}`))
	if FormatAmount(tx.Amount) != "19.90" {
		t.Fatalf("expected 19.90, got %s", tx.Amount)
	}
}

func TestReconcileAllocationsPreserveOrderAndGaps(t *testing.T) {
	body := `{"cobranca":{"id":"ch_1","status":"Recebido","itens":[` +
		`{"descricao":"101","valor":"10.00"},` +
		`{"valor":"5.00"},` +
		`{"descricao":"103"}]}}`
	tx := Reconcile(chargeResponse(t, body))

	if len(tx.Invoices) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(tx.Invoices))
	}
	if tx.Invoices[0].InvoiceID != "101" || tx.Invoices[0].Amount != "10.00" {
		t.Fatalf("unexpected first allocation: %+v", tx.Invoices[0])
	}
	if tx.Invoices[1].InvoiceID != "" || tx.Invoices[1].Amount != "5.00" {
		t.Fatalf("expected missing description passed through, got %+v", tx.Invoices[1])
	}
	if tx.Invoices[2].InvoiceID != "103" || tx.Invoices[2].Amount != "" {
		t.Fatalf("expected missing value passed through, got %+v", tx.Invoices[2])
	}
}

func TestReconcileMalformedBodyIsTotal(t *testing.T) {
	tx := Reconcile(chargeResponse(t, `<html>not json</html>`))
	if tx.Status != StatusApproved {
		t.Fatalf("expected approved for undecodable success body, got %q", tx.Status)
	}
	if tx.TransactionID != "" || len(tx.Invoices) != 0 {
		t.Fatalf("expected empty fields, got %+v", tx)
	}
}

// Building a charge from a known invoice set and reconciling a response that
// echoes the line items back must reproduce the same pairs in order.
func TestRoundTripInvoiceAllocations(t *testing.T) {
	invoices := []InvoiceAmount{
		{ID: "101", Amount: decimal.RequireFromString("10")},
		{ID: "102", Amount: decimal.RequireFromString("9.9")},
	}
	params, err := testBuilder().Build(ChargeRequest{
		ClientID: "55",
		Payer:    Payer{Name: "Maria Silva", Type: PersonTypeNatural, Document: "52998224725"},
		Form:     PaymentFormCard,
		Invoices: invoices,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	body := `{"cobranca":{"id":"ch_1","status":"Recebido","itens":[`
	for i, item := range params.Items {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"descricao":%q,"valor":%q}`, item.Description, item.Value)
	}
	body += `]}}`

	tx := Reconcile(chargeResponse(t, body))
	if len(tx.Invoices) != len(invoices) {
		t.Fatalf("expected %d allocations, got %d", len(invoices), len(tx.Invoices))
	}
	for i, invoice := range invoices {
		if tx.Invoices[i].InvoiceID != invoice.ID {
			t.Fatalf("allocation %d: expected id %q, got %q", i, invoice.ID, tx.Invoices[i].InvoiceID)
		}
		if tx.Invoices[i].Amount != FormatAmount(invoice.Amount) {
			t.Fatalf("allocation %d: expected amount %q, got %q", i, FormatAmount(invoice.Amount), tx.Invoices[i].Amount)
		}
	}
}

func TestReconcileTransportFailure(t *testing.T) {
	srvDown := widepay.Parse([]byte(`{"error":"` + widepay.TransportErrorMessage + `"}`))
	tx := Reconcile(srvDown)
	if tx.Status != StatusError {
		t.Fatalf("expected error status, got %q", tx.Status)
	}
}
