package contactlist

import "fmt"

// FilterType selects which local contacts a list shows.
type FilterType int

const (
	FilterAccount FilterType = 0

	FilterDefault              FilterType = -1
	FilterAllAccounts          FilterType = -2
	FilterCustom               FilterType = -3
	FilterStarred              FilterType = -4
	FilterWithPhoneNumbersOnly FilterType = -5
	FilterSingleContact        FilterType = -6
)

func (t FilterType) String() string {
	switch t {
	case FilterAccount:
		return "account"
	case FilterDefault:
		return "default"
	case FilterAllAccounts:
		return "all_accounts"
	case FilterCustom:
		return "custom"
	case FilterStarred:
		return "starred"
	case FilterWithPhoneNumbersOnly:
		return "with_phones"
	case FilterSingleContact:
		return "single_contact"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

// ParseFilterType parses the String form of a filter type.
func ParseFilterType(s string) (FilterType, error) {
	for _, t := range []FilterType{FilterAccount, FilterDefault, FilterAllAccounts, FilterCustom,
		FilterStarred, FilterWithPhoneNumbersOnly, FilterSingleContact} {
		if t.String() == s {
			return t, nil
		}
	}
	return FilterDefault, fmt.Errorf("unknown filter type %q", s)
}

// Filter restricts the default directory. Account fields apply to
// FilterAccount only; ContactID applies to FilterSingleContact.
type Filter struct {
	Type        FilterType
	AccountType string
	AccountName string
	DataSet     string
	ContactID   int64
}

// NewAccountFilter returns a filter for one account.
func NewAccountFilter(accountType, accountName, dataSet string) *Filter {
	return &Filter{
		Type:        FilterAccount,
		AccountType: accountType,
		AccountName: accountName,
		DataSet:     dataSet,
	}
}

// NewFilter returns a filter of a non-account type.
func NewFilter(t FilterType) *Filter {
	return &Filter{Type: t}
}

func (f *Filter) String() string {
	if f == nil {
		return FilterDefault.String()
	}
	switch f.Type {
	case FilterAccount:
		if f.DataSet != "" {
			return fmt.Sprintf("account %s/%s (%s)", f.AccountType, f.AccountName, f.DataSet)
		}
		return fmt.Sprintf("account %s/%s", f.AccountType, f.AccountName)
	case FilterSingleContact:
		return fmt.Sprintf("single_contact %d", f.ContactID)
	default:
		return f.Type.String()
	}
}
