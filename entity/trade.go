package entity

// CheckoutRequest describes one payment attempt for a booking.
// TradeNo must stay stable across retries of the same attempt so the
// gateway can deduplicate; the gateway limits it to 20 characters.
type CheckoutRequest struct {
	TradeNo       string
	TradeDate     string // "2006/01/02 15:04:05"
	Amount        int    // whole currency units
	Description   string
	ItemName      string
	ReturnURL     string
	ResultURL     string
	ClientBackURL string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// CheckoutForm is a signed parameter set ready to be POSTed to the gateway.
// Params includes the CheckMacValue integrity code; the caller renders it
// as an auto-submitting form or issues a 303 redirect.
type CheckoutForm struct {
	ActionURL string            `json:"action_url"`
	Params    map[string]string `json:"params"`
}

// TradeResult holds the typed outcome fields of a verified gateway callback.
// RtnCode 1 means the trade succeeded.
type TradeResult struct {
	TradeNo        string `json:"merchant_trade_no" bson:"merchant_trade_no"`
	GatewayTradeNo string `json:"gateway_trade_no" bson:"gateway_trade_no"`
	ReturnCode     int    `json:"return_code" bson:"return_code"`
	ReturnMessage  string `json:"return_message" bson:"return_message"`
	Amount         int    `json:"amount" bson:"amount"`
	PaymentDate    string `json:"payment_date" bson:"payment_date"`
	PaymentType    string `json:"payment_type" bson:"payment_type"`
	ChargeFee      string `json:"charge_fee,omitempty" bson:"charge_fee"`
	TradeDate      string `json:"trade_date" bson:"trade_date"`
	SimulatePaid   bool   `json:"simulate_paid" bson:"simulate_paid"`
}

// DataType implements services.Data so results can be stored as-is.
func (t *TradeResult) DataType() string {
	return "trade_result"
}
