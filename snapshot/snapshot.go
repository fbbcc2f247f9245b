// Package snapshot fetches per-view data snapshots from the portal backend.
// Each view's constituent requests run concurrently and join all-or-nothing:
// the first failure cancels the in-flight remainder and the view receives a
// single terminal error. Partial data is never returned, so aggregation
// always runs over a complete snapshot.
package snapshot

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"payboard/clients"
	"payboard/labels"
)

// Dashboard is the immutable snapshot behind the dashboard view.
type Dashboard struct {
	Payments      []clients.Payment
	Merchants     []clients.Merchant
	PayTypeLabels map[string]string
	FetchedAt     time.Time
}

// Payments is the snapshot behind the transaction list view. Merchants ride
// along so search can match against resolved merchant names.
type Payments struct {
	Payments      []clients.Payment
	Merchants     []clients.Merchant
	StatusLabels  map[string]string
	PayTypeLabels map[string]string
	FetchedAt     time.Time
}

// Merchants is the snapshot behind the merchant list view.
type Merchants struct {
	Merchants    []clients.Merchant
	StatusLabels map[string]string
	FetchedAt    time.Time
}

// MerchantDetail is the snapshot behind the merchant detail view.
type MerchantDetail struct {
	Detail        *clients.MerchantDetail
	Payments      []clients.Payment
	StatusLabels  map[string]string
	PayTypeLabels map[string]string
	FetchedAt     time.Time
}

// Fetcher coordinates joint fetches against a Portal.
type Fetcher struct {
	portal clients.Portal
	now    func() time.Time
}

func NewFetcher(portal clients.Portal) *Fetcher {
	return &Fetcher{portal: portal, now: time.Now}
}

// Dashboard fetches payments, merchants and the pay type table in parallel.
func (f *Fetcher) Dashboard(ctx context.Context) (*Dashboard, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		payments  []clients.Payment
		merchants []clients.Merchant
		payTypes  []clients.PaymentType
	)
	g.Go(func() error {
		var err error
		payments, err = f.portal.Payments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		merchants, err = f.portal.Merchants(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payTypes, err = f.portal.PaymentTypeCodes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Payments:      payments,
		Merchants:     merchants,
		PayTypeLabels: labels.Merge(labels.PayType(), typeMap(payTypes)),
		FetchedAt:     f.now(),
	}, nil
}

// Payments fetches everything the transaction list needs in parallel.
func (f *Fetcher) Payments(ctx context.Context) (*Payments, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		payments  []clients.Payment
		merchants []clients.Merchant
		statuses  []clients.CommonCode
		payTypes  []clients.PaymentType
	)
	g.Go(func() error {
		var err error
		payments, err = f.portal.Payments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		merchants, err = f.portal.Merchants(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = f.portal.PaymentStatusCodes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payTypes, err = f.portal.PaymentTypeCodes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Payments{
		Payments:      payments,
		Merchants:     merchants,
		StatusLabels:  labels.Merge(labels.PaymentStatus(), codeMap(statuses)),
		PayTypeLabels: labels.Merge(labels.PayType(), typeMap(payTypes)),
		FetchedAt:     f.now(),
	}, nil
}

// Merchants fetches the merchant list and its status code table in parallel.
func (f *Fetcher) Merchants(ctx context.Context) (*Merchants, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		merchants []clients.Merchant
		statuses  []clients.CommonCode
	)
	g.Go(func() error {
		var err error
		merchants, err = f.portal.Merchants(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = f.portal.MerchantStatusCodes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Merchants{
		Merchants:    merchants,
		StatusLabels: labels.Merge(labels.MerchantStatus(), codeMap(statuses)),
		FetchedAt:    f.now(),
	}, nil
}

// MerchantDetail fetches a merchant's registration record, the merchant
// status table and the payment list in parallel. The payment list is the
// full snapshot; the caller derives the per-merchant history from it.
func (f *Fetcher) MerchantDetail(ctx context.Context, mchtCode string) (*MerchantDetail, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		detail   *clients.MerchantDetail
		statuses []clients.CommonCode
		payments []clients.Payment
		payTypes []clients.PaymentType
	)
	g.Go(func() error {
		var err error
		detail, err = f.portal.MerchantDetail(ctx, mchtCode)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = f.portal.MerchantStatusCodes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = f.portal.Payments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payTypes, err = f.portal.PaymentTypeCodes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MerchantDetail{
		Detail:        detail,
		Payments:      payments,
		StatusLabels:  labels.Merge(labels.MerchantStatus(), codeMap(statuses)),
		PayTypeLabels: labels.Merge(labels.PayType(), typeMap(payTypes)),
		FetchedAt:     f.now(),
	}, nil
}

func codeMap(codes []clients.CommonCode) map[string]string {
	m := make(map[string]string, len(codes))
	for _, c := range codes {
		m[c.Code] = c.Description
	}
	return m
}

func typeMap(types []clients.PaymentType) map[string]string {
	m := make(map[string]string, len(types))
	for _, t := range types {
		m[t.Type] = t.Description
	}
	return m
}
