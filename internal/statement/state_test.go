package statement

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inab-dev/inab/internal/model"
)

func TestStep_CompleteBlock(t *testing.T) {
	s := Start()

	s, txn, err := Step(s, "3.5.2024")
	require.NoError(t, err)
	assert.Nil(t, txn)
	assert.Equal(t, AwaitDescription, s.Phase)
	assert.Equal(t, model.Date(2024, 5, 3), s.Date)

	s, txn, err = Step(s, "Osto K-Market")
	require.NoError(t, err)
	assert.Nil(t, txn)
	assert.Equal(t, AwaitSum, s.Phase)
	assert.Equal(t, model.CardPurchase, s.Type)
	assert.Equal(t, "K-Market", s.Description)

	s, txn, err = Step(s, "−12,34")
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, Start(), s)
	assert.Equal(t, model.CardTransaction{
		Type:        model.CardPurchase,
		Date:        model.Date(2024, 5, 3),
		Description: "K-Market",
		Cents:       -1234,
	}, *txn)
}

func TestStep_IgnoresNoiseInEachPhase(t *testing.T) {
	for _, s := range []State{
		Start(),
		{Phase: AwaitSum, Date: model.Date(2024, 1, 1), Type: model.CardPurchase, Description: "x"},
	} {
		next, txn, err := Step(s, "Some heading")
		require.NoError(t, err)
		assert.Nil(t, txn)
		assert.Equal(t, s, next, "phase %s", s.Phase)

		next, _, err = Step(s, "   ")
		require.NoError(t, err)
		assert.Equal(t, s, next, "blank line in phase %s", s.Phase)
	}
}

func TestStep_LastDateLineWins(t *testing.T) {
	s := Start()
	for _, line := range []string{"1.5.2024", "2.5.2024", "3.5.2024"} {
		var err error
		s, _, err = Step(s, line)
		require.NoError(t, err)
	}
	assert.Equal(t, AwaitDescription, s.Phase)
	assert.Equal(t, model.Date(2024, 5, 3), s.Date)
}

func TestStep_UnknownType(t *testing.T) {
	s := State{Phase: AwaitDescription, Date: model.Date(2024, 5, 3)}
	s, _, err := Step(s, "Katevaraus Ravintola")
	require.NoError(t, err)
	assert.Equal(t, model.CardUnknown, s.Type)
	assert.Equal(t, "Katevaraus Ravintola", s.Description)
}

func TestStep_KnownTypeWithoutDescription(t *testing.T) {
	s := State{Phase: AwaitDescription, Date: model.Date(2024, 5, 3)}
	s, _, err := Step(s, "Osto")
	require.NoError(t, err)
	assert.Equal(t, model.CardPurchase, s.Type)
	assert.Equal(t, "Osto", s.Description)
}

func TestStep_AmountWithoutDescriptionDropsBlock(t *testing.T) {
	s := State{Phase: AwaitDescription, Date: model.Date(2024, 5, 3)}
	s, txn, err := Step(s, "−12,34")
	require.NoError(t, err)
	assert.Nil(t, txn)
	assert.Equal(t, Start(), s)
}

func TestStep_DateInSumPhaseRestartsBlock(t *testing.T) {
	s := State{Phase: AwaitSum, Date: model.Date(2024, 5, 3), Type: model.CardPurchase, Description: "x"}
	s, txn, err := Step(s, "7.5.2024")
	require.NoError(t, err)
	assert.Nil(t, txn)
	assert.Equal(t, AwaitDescription, s.Phase)
	assert.Equal(t, model.Date(2024, 5, 7), s.Date)
	assert.Empty(t, s.Description)
}

func TestStep_BadSum(t *testing.T) {
	s := State{Phase: AwaitSum, Date: model.Date(2024, 5, 3), Type: model.CardPurchase, Description: "x"}
	for _, line := range []string{"-12,34", "12,3", "12.34", "1 234,00", "–5,00"} {
		_, txn, err := Step(s, line)
		require.Error(t, err, line)
		assert.Nil(t, txn)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), line)
		assert.Equal(t, line, pe.Text)
		assert.Equal(t, "invalid sum", pe.Reason)
	}
}

func TestStep_BadDate(t *testing.T) {
	_, _, err := Step(Start(), "31.2.2024")
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "invalid date", pe.Reason)
}

func TestParseSum(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0,00", 0},
		{"12,34", 1234},
		{"−12,34", -1234},
		{"1234,05", 123405},
		{"−0,50", -50},
	}
	for _, tt := range tests {
		got, err := ParseSum(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05.03.2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "date", AwaitDate.String())
	assert.Equal(t, "description", AwaitDescription.String())
	assert.Equal(t, "sum", AwaitSum.String())
	assert.Equal(t, "unknown", Phase(9).String())
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Line: 4, Text: "-1,00", Reason: "invalid sum"}
	assert.Equal(t, `line 4: invalid sum "-1,00"`, err.Error())

	err = &ParseError{Text: "x", Reason: "invalid date"}
	assert.Equal(t, `invalid date "x"`, err.Error())
}
