package widepay

import (
	"fmt"
	"net/url"
)

// Payment form values accepted by the charge endpoint.
const (
	FormCard   = "Cartão"
	FormBoleto = "Boleto"
)

// Payer classification. Física charges require a CPF, Jurídica a CNPJ.
const (
	PersonNatural = "Física"
	PersonLegal   = "Jurídica"
)

// Address is the payer address block, optional on a charge.
type Address struct {
	Street          string
	Number          string
	Complement      string
	Neighborhood    string
	ZipCode         string
	City            string
	State           string
	CollectShipping bool
}

// LineItem is one charge item. Value must already carry the fixed two-decimal
// shape the protocol requires.
type LineItem struct {
	Description string
	Value       string
}

// ChargeParams is the payload for recebimentos/cobrancas/adicionar.
type ChargeParams struct {
	Form            string
	Payer           string
	PersonType      string
	CPF             string
	CNPJ            string
	Email           string
	Phone           string
	Address         *Address
	Items           []LineItem
	Reference       string
	NotificationURL string
	RedirectURL     string
	DueDate         string
	Send            string
	Message         string
}

// Values renders the payload in the bracketed form encoding the API expects,
// e.g. endereco[rua] and items[0][valor]. Empty optional fields are omitted.
func (p ChargeParams) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "forma", p.Form)
	setNonEmpty(v, "cliente", p.Payer)
	setNonEmpty(v, "pessoa", p.PersonType)
	setNonEmpty(v, "cpf", p.CPF)
	setNonEmpty(v, "cnpj", p.CNPJ)
	setNonEmpty(v, "email", p.Email)
	setNonEmpty(v, "telefone", p.Phone)

	if p.Address != nil {
		setNonEmpty(v, "endereco[rua]", p.Address.Street)
		setNonEmpty(v, "endereco[numero]", p.Address.Number)
		setNonEmpty(v, "endereco[complemento]", p.Address.Complement)
		setNonEmpty(v, "endereco[bairro]", p.Address.Neighborhood)
		setNonEmpty(v, "endereco[cep]", p.Address.ZipCode)
		setNonEmpty(v, "endereco[cidade]", p.Address.City)
		setNonEmpty(v, "endereco[estado]", p.Address.State)
		if p.Address.CollectShipping {
			v.Set("endereco[coletar]", "Sim")
		} else {
			v.Set("endereco[coletar]", "Não")
		}
	}

	for i, item := range p.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		v.Set(prefix+"[descricao]", item.Description)
		v.Set(prefix+"[valor]", item.Value)
	}

	setNonEmpty(v, "referencia", p.Reference)
	setNonEmpty(v, "notificacao", p.NotificationURL)
	setNonEmpty(v, "redirecionamento", p.RedirectURL)
	setNonEmpty(v, "vencimento", p.DueDate)
	setNonEmpty(v, "enviar", p.Send)
	setNonEmpty(v, "mensagem", p.Message)
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value == "" {
		return
	}
	v.Set(key, value)
}
