package clients

// PayType identifies the payment method of a transaction.
type PayType string

const (
	PayTypeOnline  PayType = "ONLINE"
	PayTypeDevice  PayType = "DEVICE"
	PayTypeMobile  PayType = "MOBILE"
	PayTypeVact    PayType = "VACT"
	PayTypeBilling PayType = "BILLING"
)

// PaymentStatus identifies the terminal state of a transaction.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusSuccess   PaymentStatus = "SUCCESS"
	StatusFailed    PaymentStatus = "FAILED"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// Payment is a single transaction as returned by the portal backend.
// Amount is transported as a decimal string and must be parsed before
// arithmetic. PaymentAt is an ISO-8601 timestamp string.
type Payment struct {
	PaymentCode string        `json:"paymentCode"`
	MchtCode    string        `json:"mchtCode"`
	Amount      string        `json:"amount"`
	Currency    string        `json:"currency"`
	PayType     PayType       `json:"payType"`
	Status      PaymentStatus `json:"status"`
	PaymentAt   string        `json:"paymentAt"`
}

// Merchant is a registered merchant. Status is a raw code resolved
// through the mcht-status code table.
type Merchant struct {
	MchtCode string `json:"mchtCode"`
	MchtName string `json:"mchtName"`
	Status   string `json:"status"`
	BizType  string `json:"bizType"`
}

// MerchantDetail extends Merchant with registration metadata.
type MerchantDetail struct {
	Merchant
	BizNo        string `json:"bizNo"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registeredAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// CommonCode is a code/description pair from the common code tables.
type CommonCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PaymentType is a payType/description pair. The backend models it
// separately from CommonCode, so it is kept separate here too.
type PaymentType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}
