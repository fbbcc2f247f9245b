package report

import (
	"strings"

	"payboard/clients"
)

// Page sizes used by the list views.
const (
	DefaultPageSize = 20
	DetailPageSize  = 10
)

// PaymentFilter is a conjunction of optional criteria. An empty field is a
// pass-through, never a match-nothing.
type PaymentFilter struct {
	Search  string
	Status  clients.PaymentStatus
	PayType clients.PayType
}

// MerchantFilter filters merchants by name substring and exact status.
type MerchantFilter struct {
	Search string
	Status string
}

// Page is one fixed-size slice of a filtered collection.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalItems int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a further page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// FilterPayments applies the filter conjunction over a payment snapshot.
// The search term matches case-insensitively against the resolved merchant
// display name (via names, unknown codes resolve to the placeholder) or the
// payment code.
func FilterPayments(payments []clients.Payment, names map[string]string, f PaymentFilter) []clients.Payment {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]clients.Payment, 0, len(payments))
	for _, p := range payments {
		if query != "" {
			name := strings.ToLower(MerchantName(names, p.MchtCode))
			code := strings.ToLower(p.PaymentCode)
			if !strings.Contains(name, query) && !strings.Contains(code, query) {
				continue
			}
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.PayType != "" && p.PayType != f.PayType {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterMerchants applies a name substring and optional exact status match.
func FilterMerchants(merchants []clients.Merchant, f MerchantFilter) []clients.Merchant {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]clients.Merchant, 0, len(merchants))
	for _, m := range merchants {
		if query != "" && !strings.Contains(strings.ToLower(m.MchtName), query) {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Paginate slices a collection into 1-indexed fixed-size pages. The page is
// clamped into [1, max(1, totalPages)], so an out-of-range request after a
// filter shrinks the collection yields the last valid page instead of
// panicking or returning nothing.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
}

// ListState owns the filter inputs and current page of one list view and
// enforces the page-reset law: any change to a filter input moves the view
// back to page 1, while equal-value sets leave the page alone. Only the
// explicit paging methods advance within the current filtered set.
type ListState struct {
	search  string
	status  string
	payType string
	page    int
}

func NewListState() *ListState {
	return &ListState{page: 1}
}

func (s *ListState) SetSearch(v string) {
	if s.search != v {
		s.search = v
		s.page = 1
	}
}

func (s *ListState) SetStatus(v string) {
	if s.status != v {
		s.status = v
		s.page = 1
	}
}

func (s *ListState) SetPayType(v string) {
	if s.payType != v {
		s.payType = v
		s.page = 1
	}
}

// Page returns the current 1-indexed page.
func (s *ListState) Page() int { return s.page }

// SetPage jumps to an explicit page; the paginator still clamps it.
func (s *ListState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// NextPage advances within the current filtered set. With totalPages <= 1
// the paging controls are inert.
func (s *ListState) NextPage(totalPages int) {
	if totalPages <= 1 {
		return
	}
	if s.page < totalPages {
		s.page++
	}
}

// PrevPage steps back within the current filtered set.
func (s *ListState) PrevPage() {
	if s.page > 1 {
		s.page--
	}
}

// PaymentFilter materializes the state as a payment filter.
func (s *ListState) PaymentFilter() PaymentFilter {
	return PaymentFilter{
		Search:  s.search,
		Status:  clients.PaymentStatus(s.status),
		PayType: clients.PayType(s.payType),
	}
}

// MerchantFilter materializes the state as a merchant filter.
func (s *ListState) MerchantFilter() MerchantFilter {
	return MerchantFilter{Search: s.search, Status: s.status}
}
