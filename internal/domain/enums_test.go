package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	for _, s := range []string{"student", "secured", "business", "general"} {
		v, err := ParseCardType(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	}
	for _, s := range []string{"gas", "groceries", "dining", "online_retail", "travel", "general", "rideshare", "public_transit", "entertainment"} {
		_, err := ParseSpendingCategory(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseCardType("Student")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
	_, err = ParseRewardStructure("miles")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
	_, err = ParseCreditScoreRating("")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestEnumMembers(t *testing.T) {
	assert.Len(t, CardTypes(), 4)
	assert.Len(t, RewardStructures(), 2)
	assert.Len(t, SpendingCategories(), 9)
	assert.Len(t, CreditScoreRatings(), 5)

	types := CardTypes()
	types[0] = "mutated"
	assert.Equal(t, CardTypeStudent, CardTypes()[0])
}

func TestEnumScan(t *testing.T) {
	var ct CardType
	require.NoError(t, ct.Scan("business"))
	assert.Equal(t, CardTypeBusiness, ct)

	var rs RewardStructure
	require.NoError(t, rs.Scan([]byte("cashback")))
	assert.Equal(t, RewardCashback, rs)

	var sc SpendingCategory
	assert.ErrorIs(t, sc.Scan("pets"), ErrUnknownEnumValue)
	assert.ErrorIs(t, sc.Scan(nil), ErrUnknownEnumValue)
	assert.Error(t, sc.Scan(42))
	assert.Empty(t, sc)
}

func TestEnumValue(t *testing.T) {
	v, err := CreditGood.Value()
	require.NoError(t, err)
	assert.Equal(t, "good", v)

	_, err = CreditScoreRating("great").Value()
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestEnumJSON(t *testing.T) {
	var body struct {
		Type     CardType         `json:"type"`
		Category SpendingCategory `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"secured","category":"online_retail"}`), &body))
	assert.Equal(t, CardTypeSecured, body.Type)
	assert.Equal(t, CategoryOnlineRetail, body.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"gold"}`), &body))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"secured","category":"online_retail"}`, string(out))
}
