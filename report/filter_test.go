package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payboard/clients"
)

var filterNames = map[string]string{
	"M1": "ABC Store",
	"M2": "xyz",
}

func filterPayments() []clients.Payment {
	return []clients.Payment{
		pay("PAY-001", "M1", "1000", clients.StatusSuccess, clients.PayTypeOnline, "2024-01-01T10:00:00Z"),
		pay("PAY-002", "M2", "2000", clients.StatusFailed, clients.PayTypeMobile, "2024-01-02T10:00:00Z"),
		pay("PAY-003", "M1", "3000", clients.StatusSuccess, clients.PayTypeMobile, "2024-01-03T10:00:00Z"),
		pay("PAY-004", "M404", "4000", clients.StatusPending, clients.PayTypeVact, "2024-01-04T10:00:00Z"),
	}
}

func TestFilterPaymentsSearchMatchesMerchantName(t *testing.T) {
	got := FilterPayments(filterPayments(), filterNames, PaymentFilter{Search: "abc"})

	require.Len(t, got, 2)
	assert.Equal(t, "PAY-001", got[0].PaymentCode)
	assert.Equal(t, "PAY-003", got[1].PaymentCode)
}

func TestFilterPaymentsSearchMatchesPaymentCode(t *testing.T) {
	got := FilterPayments(filterPayments(), filterNames, PaymentFilter{Search: "pay-002"})

	require.Len(t, got, 1)
	assert.Equal(t, "PAY-002", got[0].PaymentCode)
}

func TestFilterPaymentsSearchNoMatch(t *testing.T) {
	got := FilterPayments(filterPayments(), filterNames, PaymentFilter{Search: "nothing-here"})

	assert.Empty(t, got)
}

func TestFilterPaymentsEmptyFilterPassesThrough(t *testing.T) {
	payments := filterPayments()

	got := FilterPayments(payments, filterNames, PaymentFilter{})

	assert.Equal(t, payments, got)
}

func TestFilterPaymentsConjunction(t *testing.T) {
	payments := filterPayments()

	byStatus := FilterPayments(payments, filterNames, PaymentFilter{Status: clients.StatusSuccess})
	require.Len(t, byStatus, 2)

	// Adding a criterion can only shrink the result.
	both := FilterPayments(payments, filterNames, PaymentFilter{
		Status:  clients.StatusSuccess,
		PayType: clients.PayTypeMobile,
	})
	require.Len(t, both, 1)
	assert.Equal(t, "PAY-003", both[0].PaymentCode)
	assert.LessOrEqual(t, len(both), len(byStatus))
}

func TestFilterPaymentsIsSubset(t *testing.T) {
	payments := filterPayments()
	got := FilterPayments(payments, filterNames, PaymentFilter{Search: "a"})

	byCode := make(map[string]bool, len(payments))
	for _, p := range payments {
		byCode[p.PaymentCode] = true
	}
	for _, p := range got {
		assert.True(t, byCode[p.PaymentCode])
	}
}

func TestFilterMerchants(t *testing.T) {
	merchants := []clients.Merchant{
		{MchtCode: "M1", MchtName: "ABC Store", Status: "01"},
		{MchtCode: "M2", MchtName: "xyz", Status: "02"},
		{MchtCode: "M3", MchtName: "abcdef", Status: "01"},
	}

	got := FilterMerchants(merchants, MerchantFilter{Search: "abc"})
	require.Len(t, got, 2)

	got = FilterMerchants(merchants, MerchantFilter{Search: "abc", Status: "01"})
	require.Len(t, got, 2)

	got = FilterMerchants(merchants, MerchantFilter{Status: "02"})
	require.Len(t, got, 1)
	assert.Equal(t, "M2", got[0].MchtCode)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 1, 20)
	assert.Len(t, first.Items, 20)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 45, first.TotalItems)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	last := Paginate(items, 3, 20)
	assert.Len(t, last.Items, 5)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
}

func TestPaginateClampsPage(t *testing.T) {
	items := []int{1, 2, 3}

	beyond := Paginate(items, 7, 2)
	assert.Equal(t, 2, beyond.Page)
	assert.Equal(t, []int{3}, beyond.Items)

	zero := Paginate(items, 0, 2)
	assert.Equal(t, 1, zero.Page)

	negative := Paginate(items, -3, 2)
	assert.Equal(t, 1, negative.Page)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int(nil), 1, 20)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestPaginateReconstructsCollection(t *testing.T) {
	items := make([]int, 53)
	for i := range items {
		items[i] = i
	}

	var rebuilt []int
	page := 1
	for {
		p := Paginate(items, page, 10)
		rebuilt = append(rebuilt, p.Items...)
		if !p.HasNext() {
			break
		}
		page++
	}

	assert.Equal(t, items, rebuilt)
}

func TestListStateResetsPageOnFilterChange(t *testing.T) {
	s := NewListState()
	s.SetPage(4)
	require.Equal(t, 4, s.Page())

	s.SetSearch("abc")
	assert.Equal(t, 1, s.Page())

	s.SetPage(3)
	s.SetStatus("SUCCESS")
	assert.Equal(t, 1, s.Page())

	s.SetPage(2)
	s.SetPayType("ONLINE")
	assert.Equal(t, 1, s.Page())
}

func TestListStateKeepsPageOnEqualFilterSet(t *testing.T) {
	s := NewListState()
	s.SetSearch("abc")
	s.SetPage(3)

	s.SetSearch("abc")
	assert.Equal(t, 3, s.Page())
}

func TestListStatePagingBounds(t *testing.T) {
	s := NewListState()

	// With a single page the controls are inert.
	s.NextPage(1)
	assert.Equal(t, 1, s.Page())
	s.NextPage(0)
	assert.Equal(t, 1, s.Page())

	s.NextPage(3)
	s.NextPage(3)
	assert.Equal(t, 3, s.Page())
	s.NextPage(3)
	assert.Equal(t, 3, s.Page())

	s.PrevPage()
	s.PrevPage()
	assert.Equal(t, 1, s.Page())
	s.PrevPage()
	assert.Equal(t, 1, s.Page())
}
