package clients

import "context"

// Portal is the read-only interface to the admin portal backend.
// Implementations must treat every call as a full-snapshot fetch; there is
// no incremental or streaming variant.
type Portal interface {
	Payments(ctx context.Context) ([]Payment, error)
	Merchants(ctx context.Context) ([]Merchant, error)
	MerchantDetail(ctx context.Context, mchtCode string) (*MerchantDetail, error)
	PaymentStatusCodes(ctx context.Context) ([]CommonCode, error)
	PaymentTypeCodes(ctx context.Context) ([]PaymentType, error)
	MerchantStatusCodes(ctx context.Context) ([]CommonCode, error)
}
