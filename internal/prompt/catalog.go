// Package prompt holds the fixed set of questions the dashboard offers.
package prompt

// CustomID selects free-text entry instead of a predefined question.
const CustomID = "custom"

// Option is one selectable prompt.
type Option struct {
	ID    string
	Label string
}

var options = []Option{
	{ID: "self_appraisal", Label: "Generate a self appraisal for me"},
	{ID: "endorsements", Label: "Show me the endorsements I have"},
	{ID: "career", Label: "Show me my current career trajectory information"},
	{ID: "skills", Label: "I would like to manage my skills"},
	{ID: "learning", Label: "I would like to manage my learning opportunities"},
	{ID: "productivity", Label: "I would like to get a picture of my productivity"},
	{ID: CustomID, Label: "I just want to ask a custom question"},
}

// Options returns the catalog in display order. The slice is a copy.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Lookup finds an option by id.
func Lookup(id string) (Option, bool) {
	for _, option := range options {
		if option.ID == id {
			return option, true
		}
	}
	return Option{}, false
}

// IndexOf returns the display position of id, or -1.
func IndexOf(id string) int {
	for idx, option := range options {
		if option.ID == id {
			return idx
		}
	}
	return -1
}
