// Package report holds the pure aggregation and filter/paginate engines.
// Every function here is stateless and side-effect free apart from
// data-quality log events; callers hand in full in-memory snapshots and
// derive display data on demand.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"payboard/clients"
	"payboard/labels"
	"payboard/output"
)

// UnknownMerchant is the placeholder shown when a payment references a
// merchant code that is missing from the merchant snapshot.
const UnknownMerchant = "알 수 없음"

// DefaultRevenueWindowDays is the dashboard's daily revenue window.
const DefaultRevenueWindowDays = 30

// KPISummary is the dashboard headline block.
type KPISummary struct {
	// TotalAmount is the SUCCESS-only amount sum, already grouped with
	// thousands separators. The caller prefixes the currency symbol.
	TotalAmount    string
	TotalCount     int
	TotalMerchants int
}

// DailyBucket is one calendar day of successful revenue. Date is the UTC
// date component of paymentAt, formatted YYYY-MM-DD.
type DailyBucket struct {
	Date   string
	Amount decimal.Decimal
}

// CategoryCount is a resolved label with a count. Order is unspecified;
// consumers sort for display.
type CategoryCount struct {
	Name  string
	Value int
}

// MerchantActivity summarizes one merchant's transaction history. Unlike
// the dashboard KPIs it covers payments of every status, matching the
// merchant detail view.
type MerchantActivity struct {
	Payments    []clients.Payment
	Count       int
	TotalAmount string
}

// Summarize computes the dashboard KPIs. Only SUCCESS payments count toward
// amount and count; the merchant total covers the whole merchant snapshot
// regardless of payment activity. Empty input yields the zero summary.
func Summarize(payments []clients.Payment, merchants []clients.Merchant) KPISummary {
	total := decimal.Zero
	count := 0
	for _, p := range payments {
		if p.Status != clients.StatusSuccess {
			continue
		}
		count++
		total = total.Add(parseAmount(p))
	}
	return KPISummary{
		TotalAmount:    FormatThousands(total),
		TotalCount:     count,
		TotalMerchants: len(merchants),
	}
}

// DailyRevenue buckets successful payments of the trailing window by UTC
// calendar date, ascending. Days without successful payments are omitted
// (sparse series). Payments with unparsable timestamps are skipped here but
// still count toward the KPIs.
func DailyRevenue(payments []clients.Payment, windowDays int, now time.Time) []DailyBucket {
	cutoff := now.UTC().AddDate(0, 0, -windowDays)
	byDate := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.Status != clients.StatusSuccess {
			continue
		}
		t, err := time.Parse(time.RFC3339, p.PaymentAt)
		if err != nil {
			output.LogEvent("payment_timestamp_invalid", map[string]any{
				"paymentCode": p.PaymentCode,
				"paymentAt":   p.PaymentAt,
			})
			continue
		}
		t = t.UTC()
		if t.Before(cutoff) {
			continue
		}
		key := t.Format("2006-01-02")
		byDate[key] = byDate[key].Add(parseAmount(p))
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	buckets := make([]DailyBucket, 0, len(dates))
	for _, date := range dates {
		buckets = append(buckets, DailyBucket{Date: date, Amount: byDate[date]})
	}
	return buckets
}

// MethodBreakdown counts successful payments per payment method, resolving
// method codes through typeLabels and falling back to the raw code.
func MethodBreakdown(payments []clients.Payment, typeLabels map[string]string) []CategoryCount {
	counts := make(map[string]int)
	for _, p := range payments {
		if p.Status != clients.StatusSuccess {
			continue
		}
		counts[string(p.PayType)]++
	}

	breakdown := make([]CategoryCount, 0, len(counts))
	for code, n := range counts {
		breakdown = append(breakdown, CategoryCount{Name: labels.Resolve(typeLabels, code), Value: n})
	}
	return breakdown
}

// NameIndex maps merchant codes to display names. On duplicate codes the
// first record wins; the earliest entry is treated as the authoritative one
// and the duplicate is surfaced as a data-quality event.
func NameIndex(merchants []clients.Merchant) map[string]string {
	idx := make(map[string]string, len(merchants))
	for _, m := range merchants {
		if _, ok := idx[m.MchtCode]; ok {
			output.LogEvent("merchant_code_duplicate", map[string]any{"mchtCode": m.MchtCode})
			continue
		}
		idx[m.MchtCode] = m.MchtName
	}
	return idx
}

// MerchantName resolves a merchant code against a name index, yielding the
// unknown placeholder instead of an error when the code is absent.
func MerchantName(idx map[string]string, mchtCode string) string {
	if name, ok := idx[mchtCode]; ok && name != "" {
		return name
	}
	return UnknownMerchant
}

// MostRecent returns the n payments with the greatest paymentAt. The sort is
// stable: equal timestamps keep their input order. Unparsable timestamps
// sort last.
func MostRecent(payments []clients.Payment, n int) []clients.Payment {
	sorted := make([]clients.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return paymentTime(sorted[i]).After(paymentTime(sorted[j]))
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ActivityFor collects one merchant's payments in recency order with count
// and total amount over all statuses.
func ActivityFor(payments []clients.Payment, mchtCode string) MerchantActivity {
	var own []clients.Payment
	for _, p := range payments {
		if p.MchtCode == mchtCode {
			own = append(own, p)
		}
	}
	own = MostRecent(own, len(own))

	total := decimal.Zero
	for _, p := range own {
		total = total.Add(parseAmount(p))
	}
	return MerchantActivity{
		Payments:    own,
		Count:       len(own),
		TotalAmount: FormatThousands(total),
	}
}

// parseAmount parses a transport amount string, coercing malformed values
// to zero with a logged data-quality warning.
func parseAmount(p clients.Payment) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(p.Amount))
	if err != nil {
		output.LogEvent("payment_amount_invalid", map[string]any{
			"paymentCode": p.PaymentCode,
			"amount":      p.Amount,
		})
		return decimal.Zero
	}
	return d
}

func paymentTime(p clients.Payment) time.Time {
	t, err := time.Parse(time.RFC3339, p.PaymentAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatThousands renders a decimal with comma digit grouping on the
// integer part, matching the ko-KR number format the web portal used.
func FormatThousands(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
