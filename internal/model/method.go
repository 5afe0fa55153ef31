package model

// Payment method names shared by the classifier, the refiner and the settings defaults.
const (
	MethodBankTransfer   = "계좌이체"
	MethodBankWithdrawal = "계좌출금"
	MethodOther          = "기타"
	MethodUnknown        = "알수없음"

	MethodKakaoPay = "카카오페이"
	MethodNaverPay = "네이버페이"
	MethodZeroPay  = "제로페이"
	MethodPayco    = "페이코"
	MethodToss     = "토스"
	MethodContact  = "연락처송금"
	MethodCheck    = "체크/카드"
	MethodCard     = "카드결제"

	MethodWallet         = "간편결제"
	MethodWalletTransfer = "간편송금"
	MethodWalletCharge   = "페이충전"
	MethodChargeWithdraw = "충전출금"
	MethodQRPay          = "QR결제"
	MethodQRPayRefund    = "QR결제환불"
	MethodCashOutPoint   = "출금처"
)

// IsPlaceholderMethod reports whether name is a generic method that keyword scanning skips.
func IsPlaceholderMethod(name string) bool {
	return name == MethodBankTransfer || name == MethodBankWithdrawal || name == MethodOther
}

// DefaultDepositMethods lists the deposit methods enabled out of the box.
func DefaultDepositMethods() []string {
	return []string{
		MethodBankTransfer, MethodKakaoPay, MethodNaverPay, MethodZeroPay, MethodPayco,
		MethodToss, MethodContact, MethodCheck, MethodWallet, MethodQRPay, MethodOther,
	}
}

// DefaultWithdrawalMethods lists the withdrawal methods enabled out of the box.
func DefaultWithdrawalMethods() []string {
	return []string{
		MethodBankWithdrawal, MethodKakaoPay, MethodNaverPay, MethodPayco, MethodToss,
		MethodCard, MethodWalletCharge, MethodQRPay, MethodOther,
	}
}
