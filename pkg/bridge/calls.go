package bridge

import (
	"context"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// decode unmarshals a raw response envelope returned by Invoke into a
// kind-specific response struct.
func decode[T any](raw []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var v T
	if uerr := json.Unmarshal(raw, &v); uerr != nil {
		return nil, wire.NewError(wire.KindProtocolError, "decode response: "+uerr.Error())
	}
	return &v, nil
}

// GetVisualTree calls the GetVisualTree request kind.
func (b *Bridge) GetVisualTree(ctx context.Context, req wire.TreeRequest) (*wire.TreeResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetVisualTree, req)
	return decode[wire.TreeResponse](raw, err)
}

// GetLogicalTree calls the GetLogicalTree request kind.
func (b *Bridge) GetLogicalTree(ctx context.Context, req wire.TreeRequest) (*wire.TreeResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetLogicalTree, req)
	return decode[wire.TreeResponse](raw, err)
}

// GetElementProperties calls the GetElementProperties request kind.
func (b *Bridge) GetElementProperties(ctx context.Context, req wire.GetElementPropertiesRequest) (*wire.GetElementPropertiesResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetElementProperties, req)
	return decode[wire.GetElementPropertiesResponse](raw, err)
}

// FindElements calls the FindElements request kind.
func (b *Bridge) FindElements(ctx context.Context, req wire.FindElementsRequest) (*wire.FindElementsResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindFindElements, req)
	return decode[wire.FindElementsResponse](raw, err)
}

// GetBindings calls the GetBindings request kind.
func (b *Bridge) GetBindings(ctx context.Context, req wire.GetBindingsRequest) (*wire.GetBindingsResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetBindings, req)
	return decode[wire.GetBindingsResponse](raw, err)
}

// GetBindingErrors calls the GetBindingErrors request kind.
func (b *Bridge) GetBindingErrors(ctx context.Context, req wire.GetBindingErrorsRequest) (*wire.GetBindingErrorsResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetBindingErrors, req)
	return decode[wire.GetBindingErrorsResponse](raw, err)
}

// GetResources calls the GetResources request kind.
func (b *Bridge) GetResources(ctx context.Context, req wire.GetResourcesRequest) (*wire.GetResourcesResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetResources, req)
	return decode[wire.GetResourcesResponse](raw, err)
}

// GetStyles calls the GetStyles request kind.
func (b *Bridge) GetStyles(ctx context.Context, req wire.GetStylesRequest) (*wire.GetStylesResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetStyles, req)
	return decode[wire.GetStylesResponse](raw, err)
}

// HighlightElement calls the HighlightElement request kind.
func (b *Bridge) HighlightElement(ctx context.Context, req wire.HighlightElementRequest) (*wire.HighlightElementResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindHighlightElement, req)
	return decode[wire.HighlightElementResponse](raw, err)
}

// GetLayoutInfo calls the GetLayoutInfo request kind.
func (b *Bridge) GetLayoutInfo(ctx context.Context, req wire.GetLayoutInfoRequest) (*wire.GetLayoutInfoResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindGetLayoutInfo, req)
	return decode[wire.GetLayoutInfoResponse](raw, err)
}

// WatchProperty calls the WatchProperty request kind. The inspector
// delivers subsequent PropertyChanged notifications out-of-band on the
// same connection that issued the watch; since Invoke opens a fresh
// connection per call, a caller that needs live notifications must use
// its own long-lived connection rather than this convenience wrapper.
func (b *Bridge) WatchProperty(ctx context.Context, req wire.WatchPropertyRequest) (*wire.WatchPropertyResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindWatchProperty, req)
	return decode[wire.WatchPropertyResponse](raw, err)
}

// ExportTree calls the ExportTree request kind.
func (b *Bridge) ExportTree(ctx context.Context, req wire.ExportTreeRequest) (*wire.ExportTreeResponse, error) {
	if req.RequestID == "" {
		req.RequestID = NewRequestID()
	}
	raw, err := b.Invoke(ctx, wire.KindExportTree, req)
	return decode[wire.ExportTreeResponse](raw, err)
}
