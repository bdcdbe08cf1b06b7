package domain

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/widepay/internal/widepay"
)

// statusTable maps the processor's charge status vocabulary to the canonical
// transaction status. The keys are the literal wire strings.
var statusTable = map[string]ChargeStatus{
	"Aguardando":           StatusPending,
	"Em análise":           StatusPending,
	"Estornado":            StatusRefunded,
	"Recebido":             StatusApproved,
	"Recebido manualmente": StatusApproved,
	"Recusado":             StatusDeclined,
	"Cancelado":            StatusDeclined,
	"Contestado":           StatusDeclined,
	"Vencido":              StatusVoid,
}

// Reconcile maps a gateway response to the canonical transaction state. It is
// total: every response yields exactly one status and missing optional fields
// fall back to zero values. Any processor error forces status error; a
// missing or unknown status with no errors is approved.
func Reconcile(resp *widepay.Response) ReconciledTransaction {
	charge := chargeObject(resp.Body())

	tx := ReconciledTransaction{
		Status:          StatusApproved,
		ProcessorStatus: stringField(charge, "status"),
		TransactionID:   stringField(charge, "id"),
		Amount:          amountField(charge, "valor"),
		Invoices:        allocations(charge),
	}

	if errs := resp.Errors(); len(errs) > 0 {
		tx.Status = StatusError
		tx.Messages = errs
		return tx
	}
	if mapped, ok := statusTable[tx.ProcessorStatus]; ok {
		tx.Status = mapped
	}
	return tx
}

// PaymentLink extracts the processor's payment screen URL from a charge
// creation response, when present.
func PaymentLink(resp *widepay.Response) string {
	return stringField(chargeObject(resp.Body()), "link")
}

// chargeObject unwraps the nested cobranca object; the body itself is used
// when the envelope is absent.
func chargeObject(body any) map[string]any {
	root, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	if charge, ok := root["cobranca"].(map[string]any); ok {
		return charge
	}
	return root
}

func allocations(charge map[string]any) []InvoiceAllocation {
	items, ok := charge["itens"].([]any)
	if !ok {
		items, ok = charge["items"].([]any)
	}
	if !ok {
		return nil
	}
	out := make([]InvoiceAllocation, 0, len(items))
	for _, entry := range items {
		item, ok := entry.(map[string]any)
		if !ok {
			out = append(out, InvoiceAllocation{})
			continue
		}
		out = append(out, InvoiceAllocation{
			InvoiceID: stringField(item, "descricao"),
			Amount:    amountText(item["valor"]),
		})
	}
	return out
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	value, _ := obj[key].(string)
	return value
}

func amountField(obj map[string]any, key string) decimal.Decimal {
	if obj == nil {
		return decimal.Zero
	}
	switch value := obj[key].(type) {
	case string:
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero
		}
		return parsed
	case float64:
		return decimal.NewFromFloat(value)
	default:
		return decimal.Zero
	}
}

func amountText(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return FormatAmount(decimal.NewFromFloat(typed))
	default:
		return ""
	}
}
