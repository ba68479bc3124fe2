package enums

import "fmt"

// BookFormat distinguishes the purchasable editions of a listing in a cart.
type BookFormat string

const (
	BookFormatAudio      BookFormat = "audio"
	BookFormatStandard   BookFormat = "standard"
	BookFormatElectronic BookFormat = "electronic"
)

var validBookFormats = []BookFormat{
	BookFormatAudio,
	BookFormatStandard,
	BookFormatElectronic,
}

// String implements fmt.Stringer.
func (f BookFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known BookFormat.
func (f BookFormat) IsValid() bool {
	for _, candidate := range validBookFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseBookFormat converts raw input into a BookFormat.
func ParseBookFormat(value string) (BookFormat, error) {
	for _, candidate := range validBookFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid book format %q", value)
}
