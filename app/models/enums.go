package models

// FeeCategory determines whether a student is billed and how the bill is attributed.
type FeeCategory string

const (
	FeeCategoryPayable   FeeCategory = "payable"
	FeeCategoryExempt    FeeCategory = "exempt"
	FeeCategorySponsored FeeCategory = "sponsored"
)

// ClassFeeType distinguishes standard classes from special classes that
// carry their own monthly fee on top of the standard fee.
type ClassFeeType string

const (
	ClassFeeStandard ClassFeeType = "standard"
	ClassFeeSpecial  ClassFeeType = "special"
)

// ChargeType is the billing period granularity of a fee charge.
type ChargeType string

const (
	ChargeTypeAnnual  ChargeType = "ANNUAL"
	ChargeTypeMonthly ChargeType = "MONTHLY"
)

// ChargeStatus is derived from amount_paid vs amount.
type ChargeStatus string

const (
	ChargeStatusUnpaid        ChargeStatus = "UNPAID"
	ChargeStatusPartiallyPaid ChargeStatus = "PARTIALLY_PAID"
	ChargeStatusPaid          ChargeStatus = "PAID"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// ReceiptType scopes receipt books; payments is the only type issued today
// but books are stored per type so other document kinds can be added.
type ReceiptType string

const (
	ReceiptTypePayment  ReceiptType = "PAYMENT"
	ReceiptTypeDonation ReceiptType = "DONATION"
)
