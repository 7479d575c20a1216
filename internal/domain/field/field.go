// Package field resolves the concrete value to write for the synced field.
package field

import (
	"fmt"

	"github.com/okian/prodsync/internal/domain/label"
	"github.com/okian/prodsync/internal/domain/model"
)

// Mode is the value mode of the synced field.
type Mode string

const (
	// ModeText fields take the product name verbatim.
	ModeText Mode = "text"
	// ModeEnumerated fields take a reference to one of a fixed option set.
	ModeEnumerated Mode = "enumerated"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeText:
		return ModeText, nil
	case ModeEnumerated:
		return ModeEnumerated, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Resolve produces the value payload for productName under the given mode.
// Callers confirm productName is non-empty before calling; an empty name is a
// skip condition upstream, not this package's concern.
//
// Enumerated lookup takes the first option whose label matches the product
// name; labels are not guaranteed unique after normalization. Zero matches is
// a loud failure: it means the option set and the product names have drifted
// apart, and skipping silently would hide that.
func Resolve(mode Mode, def model.FieldDefinition, productName string) (model.FieldValue, error) {
	switch mode {
	case ModeText:
		return model.FieldValue{Text: productName}, nil
	case ModeEnumerated:
		for _, opt := range def.Options {
			if label.Matches(opt.Label, productName) {
				return model.FieldValue{OptionID: opt.ID}, nil
			}
		}
		return model.FieldValue{}, &NoMatchingOptionError{FieldID: def.ID, ProductName: productName}
	}
	return model.FieldValue{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}
