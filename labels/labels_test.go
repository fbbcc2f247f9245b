package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInTables(t *testing.T) {
	status := PaymentStatus()
	require.NotEmpty(t, status)
	assert.Equal(t, "결제 완료", status["SUCCESS"])
	assert.Equal(t, "환불 완료", status["CANCELLED"])

	payType := PayType()
	require.NotEmpty(t, payType)
	assert.Equal(t, "온라인", payType["ONLINE"])
	assert.Equal(t, "가상계좌", payType["VACT"])
}

func TestBuiltInTablesAreCopies(t *testing.T) {
	first := PaymentStatus()
	first["SUCCESS"] = "mutated"

	assert.Equal(t, "결제 완료", PaymentStatus()["SUCCESS"])
}

func TestMergeFetchedWins(t *testing.T) {
	merged := Merge(map[string]string{"A": "default a", "B": "default b"},
		map[string]string{"B": "fetched b", "C": "fetched c"})

	assert.Equal(t, "default a", merged["A"])
	assert.Equal(t, "fetched b", merged["B"])
	assert.Equal(t, "fetched c", merged["C"])
}

func TestMergeIgnoresBlankDescriptions(t *testing.T) {
	merged := Merge(map[string]string{"A": "default a"}, map[string]string{"A": ""})

	assert.Equal(t, "default a", merged["A"])
}

func TestMergeNilDefaults(t *testing.T) {
	merged := Merge(nil, map[string]string{"A": "fetched a"})

	assert.Equal(t, "fetched a", merged["A"])
}

func TestResolve(t *testing.T) {
	table := map[string]string{"ONLINE": "온라인"}

	assert.Equal(t, "온라인", Resolve(table, "ONLINE"))
	assert.Equal(t, "NEW_CODE", Resolve(table, "NEW_CODE"))
	assert.Equal(t, "X", Resolve(nil, "X"))
}
