package analyzer

import (
	"fmt"

	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// DeriveSource ranks a binding's source by priority: explicit source
// object -> ElementName(<n>) -> RelativeSource(<mode>) -> default
// DataContext.
func DeriveSource(info *adapter.BindingInfo) string {
	switch {
	case info.ExplicitSource != "":
		return info.ExplicitSource
	case info.ElementName != "":
		return fmt.Sprintf("ElementName(%s)", info.ElementName)
	case info.RelativeSourceMode != "":
		return fmt.Sprintf("RelativeSource(%s)", info.RelativeSourceMode)
	default:
		return "DataContext"
	}
}

// effectiveStatus applies the override rule: a reported binding error
// forces status Error regardless of the adapter's raw status.
func effectiveStatus(info *adapter.BindingInfo) wire.BindingStatus {
	if info.HasError {
		return wire.BindingError
	}
	return info.Status
}

// BindingDetails assembles the wire.BindingDetails embedded in a property
// record with isBinding=true.
func BindingDetails(property string, info *adapter.BindingInfo) *wire.BindingDetails {
	if info == nil {
		return nil
	}
	return &wire.BindingDetails{
		Property:      property,
		Path:          info.Path,
		Source:        DeriveSource(info),
		Mode:          info.Mode,
		UpdateTrigger: info.UpdateTrigger,
		Converter:     info.Converter,
		Status:        effectiveStatus(info),
		HasError:      info.HasError,
		ErrorMessage:  info.ErrorMessage,
		CurrentValue:  FormatValue(info.CurrentValue, ""),
	}
}

// BindingRecord assembles the GetBindings reply shape for one binding.
func BindingRecord(property string, info *adapter.BindingInfo) wire.BindingRecord {
	return wire.BindingRecord{
		Property:      property,
		Path:          info.Path,
		Source:        DeriveSource(info),
		Mode:          info.Mode,
		UpdateTrigger: info.UpdateTrigger,
		Converter:     info.Converter,
		Status:        effectiveStatus(info),
		HasError:      info.HasError,
		ErrorMessage:  info.ErrorMessage,
		CurrentValue:  FormatValue(info.CurrentValue, ""),
	}
}
