package interact

// ChipSpec describes a copy chip the page renders.
type ChipSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

func (c ChipSpec) AriaLabel() string { return "Copy " + c.Label }

const (
	ChipEmail = "email"
	ChipPhone = "phone"
)

// ContactChips returns the chips shown in the hero and contact sections.
func ContactChips(email, phone string) []ChipSpec {
	return []ChipSpec{
		{Label: ChipEmail, Value: email, Icon: "mail"},
		{Label: ChipPhone, Value: phone, Icon: "phone"},
	}
}

// IsChipLabel reports whether label names one of the contact chips.
func IsChipLabel(label string) bool {
	return label == ChipEmail || label == ChipPhone
}
