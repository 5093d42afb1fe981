// Package store owns the read-only customer and product dataset backing the
// loan tools. The data is loaded once at startup; serving a tool call before
// Open succeeds is a configuration error, so the accessors never lazily
// initialise.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/loan"
)

//go:embed db.json
var rawDB []byte

// ActiveLoan is one outstanding loan on a customer's credit report.
type ActiveLoan struct {
	Type        string `json:"type"`
	Outstanding int    `json:"outstanding"`
	MonthlyEMI  int    `json:"monthly_emi"`
}

// CreditReport is a read-only snapshot of a customer's credit bureau data.
type CreditReport struct {
	CreditScore          int          `json:"credit_score"`
	ActiveLoans          []ActiveLoan `json:"active_loans"`
	DefaultsLast3Years   int          `json:"defaults_last_3_years"`
	CreditUtilizationPct int          `json:"credit_utilization_pct"`
}

// FinancialProfile is a read-only snapshot of income and employment details.
type FinancialProfile struct {
	MonthlyIncome          int    `json:"monthly_income"`
	Employer               string `json:"employer"`
	EmploymentType         string `json:"employment_type"`
	EmploymentTenureMonths int    `json:"employment_tenure_months"`
	ExistingMonthlyEMI     int    `json:"existing_monthly_emi"`
	AverageBankBalance6M   int    `json:"average_bank_balance_6m"`
}

// Customer is the full identity and profile record. RiskFlag is for bank use
// only and must never reach a customer-facing response.
type Customer struct {
	CustomerID       string           `json:"customer_id"`
	Verified         bool             `json:"verified"`
	FullName         string           `json:"full_name"`
	KYCStatus        string           `json:"kyc_status"`
	RiskFlag         string           `json:"risk_flag"`
	CreditReport     CreditReport     `json:"credit_report"`
	FinancialProfile FinancialProfile `json:"financial_profile"`
	PAN              string           `json:"pan"`
	Aadhar           string           `json:"aadhar"`
	Phone            string           `json:"phone"`
}

// IdentifierType enumerates the accepted identity document types.
type IdentifierType string

const (
	IdentifierPAN    IdentifierType = "PAN"
	IdentifierAadhar IdentifierType = "AADHAR"
	IdentifierPhone  IdentifierType = "PHONE"
)

// ParseIdentifierType validates the raw identifier type from a tool call.
func ParseIdentifierType(raw string) (IdentifierType, error) {
	switch IdentifierType(strings.ToUpper(strings.TrimSpace(raw))) {
	case IdentifierPAN:
		return IdentifierPAN, nil
	case IdentifierAadhar:
		return IdentifierAadhar, nil
	case IdentifierPhone:
		return IdentifierPhone, nil
	default:
		return "", errx.Validation("invalid identifier type")
	}
}

// Store is the explicitly owned, read-only data store handed to the tools.
type Store struct {
	customers []Customer
	products  []loan.Product
}

type database struct {
	Customers []Customer     `json:"customers"`
	Products  []loan.Product `json:"products"`
}

// Open parses the embedded dataset and returns a ready Store.
func Open() (*Store, error) {
	return openFrom(rawDB)
}

func openFrom(raw []byte) (*Store, error) {
	var db database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(db.Customers) == 0 || len(db.Products) == 0 {
		return nil, fmt.Errorf("dataset is missing customers or products")
	}
	return &Store{customers: db.Customers, products: db.Products}, nil
}

// Products returns the shared immutable product catalog.
func (s *Store) Products() []loan.Product {
	return s.products
}

// FindCustomer looks a customer up by id.
func (s *Store) FindCustomer(customerID string) (Customer, error) {
	for _, c := range s.customers {
		if c.CustomerID == customerID {
			return c, nil
		}
	}
	return Customer{}, errx.NotFound()
}

// FindCustomerByIdentifier looks a customer up by PAN, Aadhar or phone value.
func (s *Store) FindCustomerByIdentifier(idType IdentifierType, value string) (Customer, error) {
	value = strings.TrimSpace(value)
	for _, c := range s.customers {
		var candidate string
		switch idType {
		case IdentifierPAN:
			candidate = c.PAN
		case IdentifierAadhar:
			candidate = c.Aadhar
		case IdentifierPhone:
			candidate = c.Phone
		}
		if candidate != "" && strings.EqualFold(candidate, value) {
			return c, nil
		}
	}
	return Customer{}, errx.NotFound()
}
