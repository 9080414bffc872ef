// Copyright (c) Microsoft. All rights reserved.

package docintel

import (
	"strconv"
)

// Field types.
const (
	FieldString   = "string"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldPhone    = "phoneNumber"
	FieldNumber   = "number"
	FieldInteger  = "integer"
	FieldCurrency = "currency"
	FieldAddress  = "address"
	FieldArray    = "array"
	FieldObject   = "object"
)

// AnalyzeResult is the outcome of a successful analysis.
type AnalyzeResult struct {
	APIVersion string             `json:"apiVersion"`
	ModelID    string             `json:"modelId"`
	Content    string             `json:"content"`
	Pages      []Page             `json:"pages"`
	Documents  []AnalyzedDocument `json:"documents"`
}

// Page holds per-page metadata.
type Page struct {
	PageNumber int     `json:"pageNumber"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit"`
}

// AnalyzedDocument is one document found by the model.
type AnalyzedDocument struct {
	DocType    string           `json:"docType"`
	Fields     map[string]Field `json:"fields"`
	Confidence float64          `json:"confidence"`
}

// Field returns the named field, or nil when the model did not extract it.
func (d *AnalyzedDocument) Field(name string) *Field {
	f, ok := d.Fields[name]
	if !ok {
		return nil
	}
	return &f
}

// CurrencyValue is a monetary amount.
type CurrencyValue struct {
	Amount         float64 `json:"amount"`
	CurrencySymbol string  `json:"currencySymbol"`
	CurrencyCode   string  `json:"currencyCode"`
}

func (c CurrencyValue) String() string {
	return c.CurrencySymbol + strconv.FormatFloat(c.Amount, 'f', -1, 64)
}

// AddressValue is a structured postal address.
type AddressValue struct {
	HouseNumber   string `json:"houseNumber,omitempty"`
	Road          string `json:"road,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	CountryRegion string `json:"countryRegion,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
}

// Field is an extracted value. The populated value field depends on Type.
type Field struct {
	Type          string           `json:"type"`
	Content       string           `json:"content"`
	Confidence    float64          `json:"confidence"`
	ValueString   *string          `json:"valueString,omitempty"`
	ValueDate     *string          `json:"valueDate,omitempty"`
	ValueTime     *string          `json:"valueTime,omitempty"`
	ValuePhone    *string          `json:"valuePhoneNumber,omitempty"`
	ValueNumber   *float64         `json:"valueNumber,omitempty"`
	ValueInteger  *int64           `json:"valueInteger,omitempty"`
	ValueCurrency *CurrencyValue   `json:"valueCurrency,omitempty"`
	ValueAddress  *AddressValue    `json:"valueAddress,omitempty"`
	ValueArray    []Field          `json:"valueArray,omitempty"`
	ValueObject   map[string]Field `json:"valueObject,omitempty"`
}

// Value returns the typed value of the field, falling back to its raw
// content when no typed value was extracted.
func (f *Field) Value() any {
	switch {
	case f.Type == FieldString && f.ValueString != nil:
		return *f.ValueString
	case f.Type == FieldDate && f.ValueDate != nil:
		return *f.ValueDate
	case f.Type == FieldTime && f.ValueTime != nil:
		return *f.ValueTime
	case f.Type == FieldPhone && f.ValuePhone != nil:
		return *f.ValuePhone
	case f.Type == FieldNumber && f.ValueNumber != nil:
		return *f.ValueNumber
	case f.Type == FieldInteger && f.ValueInteger != nil:
		return *f.ValueInteger
	case f.Type == FieldCurrency && f.ValueCurrency != nil:
		return *f.ValueCurrency
	case f.Type == FieldAddress && f.ValueAddress != nil:
		return *f.ValueAddress
	case f.Type == FieldArray:
		return f.ValueArray
	case f.Type == FieldObject:
		return f.ValueObject
	}
	return f.Content
}

// Currency returns the currency value, or nil for other field types.
func (f *Field) Currency() *CurrencyValue {
	if f.Type != FieldCurrency {
		return nil
	}
	return f.ValueCurrency
}
