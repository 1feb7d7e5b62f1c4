package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pstuifzand/tui-contacts/internal/contactlist"
)

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next rune inside quotes.
func parseCommand(line string) []string {
	var parts []string
	var current strings.Builder
	inWord := false
	var quote rune
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

var errFilterUsage = errors.New("Usage: filter default|all|starred|phones|account TYPE NAME [DATASET]|contact ID")

// parseFilter parses the arguments of the filter command
func parseFilter(args []string) (*contactlist.Filter, error) {
	if len(args) == 0 {
		return nil, errFilterUsage
	}
	switch args[0] {
	case "default":
		return contactlist.NewFilter(contactlist.FilterDefault), nil
	case "all":
		return contactlist.NewFilter(contactlist.FilterAllAccounts), nil
	case "starred":
		return contactlist.NewFilter(contactlist.FilterStarred), nil
	case "phones":
		return contactlist.NewFilter(contactlist.FilterWithPhoneNumbersOnly), nil
	case "account":
		if len(args) != 3 && len(args) != 4 {
			return nil, errFilterUsage
		}
		dataSet := ""
		if len(args) == 4 {
			dataSet = args[3]
		}
		return contactlist.NewAccountFilter(args[1], args[2], dataSet), nil
	case "contact":
		if len(args) != 2 {
			return nil, errFilterUsage
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid contact id %q", args[1])
		}
		f := contactlist.NewFilter(contactlist.FilterSingleContact)
		f.ContactID = id
		return f, nil
	}
	return nil, fmt.Errorf("unknown filter %q", args[0])
}
