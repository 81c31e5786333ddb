package domain

// FieldType enumerates the input kinds a requirement field can take.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// ParseFieldType normalizes an incoming type string, falling back to text
// for anything unrecognized (the supplier feed is not trusted).
func ParseFieldType(s string) FieldType {
	switch FieldType(s) {
	case FieldTypeTextarea:
		return FieldTypeTextarea
	case FieldTypeSelect:
		return FieldTypeSelect
	default:
		return FieldTypeText
	}
}

// RequirementField describes one dynamic field the storefront must collect
// from the buyer before an order can be relayed to the supplier. The set is
// owned by the local product as serialized metadata and replaced wholesale
// on every sync.
type RequirementField struct {
	ID          uint64    `json:"productRequireID" validate:"required"`
	Identifier  string    `json:"identifier" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Type        FieldType `json:"type" validate:"oneof=text textarea select"`
	MinLength   int       `json:"min_length" validate:"gte=0"`
	MaxLength   int       `json:"max_length" validate:"gte=0"`
	Placeholder string    `json:"placeholder"`
	Options     []string  `json:"options,omitempty"`
	Required    bool      `json:"is_required"`
	Tooltip     string    `json:"tooltip,omitempty"`
}
