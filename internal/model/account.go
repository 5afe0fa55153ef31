package model

// OwnedAccount is one of the user's own accounts, used to recognise self transfers.
// Empty fields are treated as "not specified".
type OwnedAccount struct {
	BankName      string `mapstructure:"bank_name" yaml:"bank_name"`
	AccountName   string `mapstructure:"account_name" yaml:"account_name"`
	AccountNumber string `mapstructure:"account_number" yaml:"account_number"`
	Memo          string `mapstructure:"memo" yaml:"memo"`
}

// CashOutDestination is a named place the user withdraws cash to.
type CashOutDestination struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Number string `mapstructure:"number" yaml:"number"`
	Bank   string `mapstructure:"bank" yaml:"bank"`
	Memo   string `mapstructure:"memo" yaml:"memo"`
}

// QRBusinessType tells who scans the code at a QR-pay merchant.
type QRBusinessType string

// QR business type constants.
const (
	QRCustomerScans QRBusinessType = "customer-scans"
	QRMerchantScans QRBusinessType = "merchant-scans"
)

// Label returns the tag shown inside the refined QR payment method.
func (t QRBusinessType) Label() string {
	switch t {
	case QRCustomerScans:
		return "고객스캔"
	case QRMerchantScans:
		return "가맹점스캔"
	default:
		return "QR"
	}
}

// QRBusiness is a merchant the user takes QR payments at.
type QRBusiness struct {
	Name string         `mapstructure:"name" yaml:"name"`
	Type QRBusinessType `mapstructure:"type" yaml:"type"`
}
