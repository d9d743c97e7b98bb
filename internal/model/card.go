package model

import "time"

// CardTransactionType classifies a credit card statement line.
type CardTransactionType string

const (
	CardPurchase  CardTransactionType = "Osto"
	CardReturn    CardTransactionType = "Hyvitys"
	CardRepayment CardTransactionType = "Suoritus"
	CardUnknown   CardTransactionType = "Tuntematon"
)

// ParseCardTransactionType maps a statement type token to its type.
// Unrecognized tokens yield CardUnknown and false.
func ParseCardTransactionType(token string) (CardTransactionType, bool) {
	switch t := CardTransactionType(token); t {
	case CardPurchase, CardReturn, CardRepayment, CardUnknown:
		return t, true
	default:
		return CardUnknown, false
	}
}

// CardTransaction is a single record scraped from a credit card statement.
type CardTransaction struct {
	Type        CardTransactionType
	Date        time.Time
	Description string
	Cents       int64
}

// Scheduled converts the record into a scheduled transaction.
func (c CardTransaction) Scheduled() ScheduledTransaction {
	return ScheduledTransaction{
		Date:        c.Date,
		AmountCents: c.Cents,
		Description: c.Description,
	}
}
