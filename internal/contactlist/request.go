package contactlist

// DisplayOrder selects which form of a contact's name is shown.
type DisplayOrder int

const (
	DisplayOrderPrimary DisplayOrder = iota
	DisplayOrderAlternative
)

// SortOrder selects which sort key orders the list.
type SortOrder int

const (
	SortOrderPrimary SortOrder = iota
	SortOrderAlternative
)

// Column names of content result sets.
const (
	ColumnLookupKey      = "lookup_key"
	ColumnDisplayName    = "display_name"
	ColumnDisplayNameAlt = "display_name_alt"
	ColumnPhotoID        = "photo_id"
	ColumnPhotoURI       = "photo_uri"
	ColumnStarred        = "starred"
	ColumnIsUserProfile  = "is_user_profile"
	ColumnContactID      = "contact_id"
	ColumnNumber         = "number"
	ColumnNumberLabel    = "label"
)

// LoadRequest describes the content query for one partition.
type LoadRequest struct {
	DirectoryID int64
	SearchMode  bool
	// Query is the raw query string; empty outside search mode.
	Query string
	// Limit caps the number of rows; 0 means no limit.
	Limit          int
	DisplayOrder   DisplayOrder
	SortOrder      SortOrder
	Filter         *Filter
	IncludeProfile bool
	// IncludeIndex asks the source for address-book index extras.
	IncludeIndex bool
	// ContentURI addresses an extended directory.
	ContentURI string
	// PhoneNumbers requests one row per phone number.
	PhoneNumbers bool
}
