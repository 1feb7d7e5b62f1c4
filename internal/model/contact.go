// Package model contains the address book records
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Phone is one phone number of a contact
type Phone struct {
	Number string `json:"number" validate:"required,max=999"`
	Label  string `json:"label,omitempty"`
}

// Contact is one address book entry
type Contact struct {
	LookupKey      string  `json:"lookup_key" validate:"required"`
	GivenName      string  `json:"given_name,omitempty"`
	FamilyName     string  `json:"family_name,omitempty"`
	DisplayName    string  `json:"display_name" validate:"required"`
	DisplayNameAlt string  `json:"display_name_alt,omitempty"`
	Starred        bool    `json:"starred,omitempty"`
	Visible        bool    `json:"visible"`
	AccountType    string  `json:"account_type,omitempty"`
	AccountName    string  `json:"account_name,omitempty"`
	DataSet        string  `json:"data_set,omitempty"`
	PhotoURI       string  `json:"photo_uri,omitempty"`
	Phones         []Phone `json:"phones,omitempty" validate:"dive"`
}

// Directory is a contact source other than the local address book
type Directory struct {
	PackageName     string     `json:"package_name" validate:"required"`
	TypeLabel       string     `json:"type_label"`
	DisplayName     string     `json:"display_name"`
	PhotoSupport    int        `json:"photo_support" validate:"min=0,max=3"`
	ShortcutSupport int        `json:"shortcut_support" validate:"min=0,max=2"`
	Contacts        []*Contact `json:"contacts,omitempty" validate:"dive"`
}

// AddressBook is the document read by the importer
type AddressBook struct {
	Profile     *Contact     `json:"profile,omitempty"`
	Contacts    []*Contact   `json:"contacts" validate:"dive"`
	Directories []*Directory `json:"directories,omitempty" validate:"dive"`
}

// NewContact creates a visible contact with a generated lookup key
func NewContact(given, family string) *Contact {
	c := &Contact{
		LookupKey:  uuid.NewString(),
		GivenName:  given,
		FamilyName: family,
		Visible:    true,
	}
	c.DisplayName = joinNonEmpty(" ", given, family)
	c.DisplayNameAlt = joinNonEmpty(", ", family, given)
	return c
}

// NewAddressBook creates an empty address book
func NewAddressBook() *AddressBook {
	return &AddressBook{
		Contacts: make([]*Contact, 0),
	}
}

// AlternativeName returns the family-name-first form, falling back to the
// display name
func (c *Contact) AlternativeName() string {
	if c.DisplayNameAlt != "" {
		return c.DisplayNameAlt
	}
	return c.DisplayName
}

// AddPhone appends a phone number
func (c *Contact) AddPhone(number, label string) {
	c.Phones = append(c.Phones, Phone{Number: number, Label: label})
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
