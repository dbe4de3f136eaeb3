package model

import (
	"fmt"
	"strings"
)

// Category classifies an expense. The set is closed and its order is the
// display order used by charts and totals.
type Category string

const (
	CategoryRent            Category = "Rent"
	CategoryOutsideFood     Category = "Outside Food"
	CategoryGrocery         Category = "Grocery"
	CategoryFamilyFriends   Category = "Family and Friends"
	CategoryTravel          Category = "Travel"
	CategoryEntertainment   Category = "Entertainment"
	CategoryUtilities       Category = "Utilities"
	CategoryShopping        Category = "Shopping"
	CategoryHealthcare      Category = "Healthcare"
	CategoryEducation       Category = "Education"
	CategoryTransportation  Category = "Transportation"
	CategoryInsurance       Category = "Insurance"
	CategoryInvestments     Category = "Investments"
	CategoryPersonalCare    Category = "Personal Care"
	CategoryHomeMaintenance Category = "Home Maintenance"
	CategoryGifts           Category = "Gifts"
	CategorySubscriptions   Category = "Subscriptions"
	CategoryOther           Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRent,
	CategoryOutsideFood,
	CategoryGrocery,
	CategoryFamilyFriends,
	CategoryTravel,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTransportation,
	CategoryInsurance,
	CategoryInvestments,
	CategoryPersonalCare,
	CategoryHomeMaintenance,
	CategoryGifts,
	CategorySubscriptions,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a display name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// PaymentMethod records how an expense was paid. Optional on an expense.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentDebitCard    PaymentMethod = "Debit Card"
	PaymentCreditCard   PaymentMethod = "Credit Card"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
	PaymentWallet       PaymentMethod = "Wallet"
	PaymentOther        PaymentMethod = "Other"
)

// PaymentMethods lists every payment method in display order.
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentDebitCard,
	PaymentCreditCard,
	PaymentUPI,
	PaymentBankTransfer,
	PaymentWallet,
	PaymentOther,
}

// Valid reports whether p is one of the known payment methods.
func (p PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePaymentMethod resolves a display name, ignoring case and surrounding space.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	for _, p := range PaymentMethods {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}
