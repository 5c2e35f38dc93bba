package inspector

import (
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/faze79/WPFVisualTreeMcp/internal/analyzer"
	"github.com/faze79/WPFVisualTreeMcp/internal/handleid"
	"github.com/faze79/WPFVisualTreeMcp/pkg/adapter"
	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// dispatch routes a validated envelope to its handler and returns the
// ready-to-encode response value (always embedding wire.ResponseEnvelope).
func (e *Endpoint) dispatch(env wire.RequestEnvelope) any {
	switch env.Type {
	case wire.KindGetVisualTree:
		return e.handleTree(env.Data, e.adapter.ChildrenVisual)
	case wire.KindGetLogicalTree:
		return e.handleTree(env.Data, e.adapter.ChildrenLogical)
	case wire.KindGetElementProperties:
		return e.handleGetElementProperties(env.Data)
	case wire.KindFindElements:
		return e.handleFindElements(env.Data)
	case wire.KindGetBindings:
		return e.handleGetBindings(env.Data)
	case wire.KindGetBindingErrors:
		return e.handleGetBindingErrors(env.Data)
	case wire.KindGetResources:
		return e.handleGetResources(env.Data)
	case wire.KindGetStyles:
		return e.handleGetStyles(env.Data)
	case wire.KindHighlightElement:
		return e.handleHighlightElement(env.Data)
	case wire.KindGetLayoutInfo:
		return e.handleGetLayoutInfo(env.Data)
	case wire.KindWatchProperty:
		return e.handleWatchProperty(env.Data)
	case wire.KindExportTree:
		return e.handleExportTree(env.Data)
	default:
		return wire.NewErrorResponse("", classifiedMessage(wire.KindInvalidRequest, "unrecognized request type"))
	}
}

// asErr extracts a *wire.Error's Kind/Message, falling back to
// HandlerError for an error of an unexpected type.
func asErr(err error) (wire.ErrorKind, string) {
	if werr, ok := err.(*wire.Error); ok {
		return werr.Kind, werr.Error()
	}
	return wire.KindHandlerError, err.Error()
}

func errString(kind wire.ErrorKind, msg string) string {
	return string(kind) + ": " + msg
}

func (e *Endpoint) resolveHandle(h string) (adapter.Node, error) {
	node, ok := e.registry.Resolve(handleid.Handle(h))
	if !ok {
		return nil, wire.NewError(wire.KindNotFound, "unknown element handle: "+h)
	}
	return node, nil
}

// --- GetVisualTree / GetLogicalTree ---

func (e *Endpoint) handleTree(data []byte, children childrenFunc) any {
	var req wire.TreeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		roots, rootErr := e.treeRoots(req.RootHandle)
		if rootErr != nil {
			return nil, rootErr
		}

		total := 0
		maxDepth := req.MaxDepthOrDefault()
		var root *wire.VisualTreeNode
		cut := false
		if len(roots) == 1 {
			root, cut = e.buildTree(roots[0], 0, maxDepth, children, &total)
		} else {
			// No explicit rootHandle: synthesize a virtual root so every
			// top-level window appears as a child of one tree.
			root = &wire.VisualTreeNode{TypeName: "ApplicationRoots", Depth: 0}
			for _, r := range roots {
				child, childCut := e.buildTree(r, 1, maxDepth, children, &total)
				root.Children = append(root.Children, child)
				cut = cut || childCut
			}
		}

		return wire.TreeResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Root:             root,
			TotalElements:    total,
			MaxDepthReached:  cut,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

func (e *Endpoint) treeRoots(rootHandle string) ([]adapter.Node, error) {
	if rootHandle == "" {
		return e.adapter.RootNodes(), nil
	}
	node, err := e.resolveHandle(rootHandle)
	if err != nil {
		return nil, err
	}
	return []adapter.Node{node}, nil
}

// --- GetElementProperties ---

func (e *Endpoint) handleGetElementProperties(data []byte) any {
	var req wire.GetElementPropertiesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}

		descs := e.adapter.Properties(node)
		records := make([]wire.PropertyRecord, 0, len(descs))
		for _, d := range descs {
			value, source, isBinding, err := e.adapter.ReadProperty(node, d.Name)
			if err != nil {
				continue
			}
			rec := wire.PropertyRecord{
				Name:     d.Name,
				TypeName: d.DeclaredType,
				Value:    analyzer.FormatValue(value, d.DeclaredType),
				Source:   source,
				IsBinding: isBinding,
			}
			if isBinding {
				if info, bErr := e.adapter.Binding(node, d.Name); bErr == nil && info != nil {
					rec.BindingDetails = analyzer.BindingDetails(d.Name, info)
				}
			}
			records = append(records, rec)
		}
		sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

		return wire.GetElementPropertiesResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Properties:       records,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- FindElements ---

func (e *Endpoint) handleFindElements(data []byte) any {
	var req wire.FindElementsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		roots, err := e.treeRoots(req.RootHandle)
		if err != nil {
			return nil, err
		}

		maxResults := req.MaxResultsClamped()
		var matches []wire.FindMatch

		var walk func(node adapter.Node, path []string)
		walk = func(node adapter.Node, path []string) {
			if len(matches) >= maxResults {
				return
			}
			typeName := e.adapter.TypeName(node)
			shortType := e.adapter.ShortTypeName(node)
			name, _ := e.adapter.Name(node)
			label := elementLabel(shortType, name)
			nodePath := append(append([]string{}, path...), label)

			if e.findMatches(node, typeName, shortType, name, req) {
				matches = append(matches, wire.FindMatch{
					Handle:   string(e.registry.Assign(node)),
					TypeName: typeName,
					Name:     name,
					Path:     strings.Join(nodePath, " > "),
				})
				if len(matches) >= maxResults {
					return
				}
			}

			for _, child := range e.adapter.ChildrenVisual(node) {
				walk(child, nodePath)
				if len(matches) >= maxResults {
					return
				}
			}
		}

		for _, root := range roots {
			walk(root, nil)
			if len(matches) >= maxResults {
				break
			}
		}

		if matches == nil {
			matches = []wire.FindMatch{}
		}
		return wire.FindElementsResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Matches:          matches,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

func (e *Endpoint) findMatches(node adapter.Node, typeName, shortType, name string, req wire.FindElementsRequest) bool {
	if req.TypeName != "" {
		tn := strings.ToLower(req.TypeName)
		if !strings.Contains(strings.ToLower(typeName), tn) && !strings.EqualFold(shortType, req.TypeName) {
			return false
		}
	}
	if req.ElementName != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(req.ElementName)) {
		return false
	}
	for prop, want := range req.PropertyFilter {
		value, _, _, err := e.adapter.ReadProperty(node, prop)
		if err != nil {
			return false
		}
		got := analyzer.FormatValue(value, "")
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

// --- GetBindings ---

func (e *Endpoint) handleGetBindings(data []byte) any {
	var req wire.GetBindingsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}

		var bindings []wire.BindingRecord
		for _, d := range e.adapter.Properties(node) {
			info, err := e.adapter.Binding(node, d.Name)
			if err != nil || info == nil {
				continue
			}
			bindings = append(bindings, analyzer.BindingRecord(d.Name, info))
		}
		if bindings == nil {
			bindings = []wire.BindingRecord{}
		}

		return wire.GetBindingsResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Bindings:         bindings,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- GetBindingErrors ---

func (e *Endpoint) handleGetBindingErrors(data []byte) any {
	var req wire.GetBindingErrorsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}
	return wire.GetBindingErrorsResponse{
		ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
		Errors:           e.bindingErrors.Snapshot(),
	}
}

// --- GetResources ---

func (e *Endpoint) handleGetResources(data []byte) any {
	var req wire.GetResourcesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		var node adapter.Node
		if req.ElementHandle != "" {
			n, err := e.resolveHandle(req.ElementHandle)
			if err != nil {
				return nil, err
			}
			node = n
		}

		raw := e.adapter.Resources(req.Scope, node)
		records := make([]wire.ResourceRecord, 0, len(raw))
		for _, r := range raw {
			records = append(records, wire.ResourceRecord{
				Key:        r.Key,
				TypeName:   r.TypeName,
				Value:      analyzer.FormatValue(r.Value, r.TypeName),
				Source:     r.Source,
				TargetType: r.TargetType,
			})
		}
		// Not re-sorted here: for element scope the adapter returns
		// ancestor-level resources (already key-ascending) followed by
		// application-scope resources (also key-ascending) appended at
		// the end, and a flat re-sort would interleave the two groups.

		return wire.GetResourcesResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Resources:        records,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- GetStyles ---

func (e *Endpoint) handleGetStyles(data []byte) any {
	var req wire.GetStylesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}

		info, err := e.adapter.Style(node)
		if err != nil {
			return nil, err
		}
		if info == nil {
			return wire.GetStylesResponse{
				ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			}, nil
		}

		setters := make([]wire.StyleSetter, 0, len(info.Setters))
		for _, s := range info.Setters {
			setters = append(setters, wire.StyleSetter{Property: s.Property, Value: analyzer.FormatValue(s.Value, "")})
		}

		return wire.GetStylesResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			Style: &wire.StyleRecord{
				Key:                 info.Key,
				TargetType:          info.TargetType,
				BasedOn:             info.BasedOn,
				Setters:             setters,
				Triggers:            info.Triggers,
				ImplicitStyleExists: info.ImplicitStyleExists,
			},
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- HighlightElement ---

func (e *Endpoint) handleHighlightElement(data []byte) any {
	var req wire.HighlightElementRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	_, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}
		return nil, e.adapter.Highlight(node, req.DurationOrDefault())
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return wire.HighlightElementResponse{
		ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
	}
}

// --- GetLayoutInfo ---

func (e *Endpoint) handleGetLayoutInfo(data []byte) any {
	var req wire.GetLayoutInfoRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}
		layout, err := e.adapter.Layout(node)
		if err != nil {
			return nil, wire.NewError(wire.KindNotRenderable, "element is not renderable")
		}

		var padding *wire.Thickness
		if layout.Padding != nil {
			padding = &wire.Thickness{L: layout.Padding.L, T: layout.Padding.T, R: layout.Padding.R, B: layout.Padding.B}
		}

		return wire.GetLayoutInfoResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			LayoutRecord: wire.LayoutRecord{
				ActualWidth:         layout.ActualWidth,
				ActualHeight:        layout.ActualHeight,
				DesiredSize:         wire.Size{W: layout.DesiredW, H: layout.DesiredH},
				RenderSize:          wire.Size{W: layout.RenderW, H: layout.RenderH},
				Margin:              wire.Thickness{L: layout.Margin.L, T: layout.Margin.T, R: layout.Margin.R, B: layout.Margin.B},
				Padding:             padding,
				HorizontalAlignment: layout.HorizontalAlignment,
				VerticalAlignment:   layout.VerticalAlignment,
				Visibility:          layout.Visibility,
			},
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- WatchProperty ---

func (e *Endpoint) handleWatchProperty(data []byte) any {
	var req wire.WatchPropertyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		node, err := e.resolveHandle(req.ElementHandle)
		if err != nil {
			return nil, err
		}

		value, _, _, err := e.adapter.ReadProperty(node, req.PropertyName)
		if err != nil {
			return nil, wire.NewError(wire.KindPropertyNotFound, "unknown property: "+req.PropertyName)
		}

		id, initial, err := e.watches.Start(e.adapter, node, handleid.Handle(req.ElementHandle), req.PropertyName, "", value)
		if err != nil {
			return nil, wire.NewError(wire.KindPropertyNotFound, "unable to watch property: "+req.PropertyName)
		}
		if e.metrics != nil {
			e.metrics.ActiveWatches.Set(float64(e.watches.Count()))
		}

		return wire.WatchPropertyResponse{
			ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
			WatchID:          string(id),
			InitialValue:     initial,
		}, nil
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// --- ExportTree ---

func (e *Endpoint) handleExportTree(data []byte) any {
	var req wire.ExportTreeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wire.NewErrorResponse("", errString(wire.KindInvalidRequest, err.Error()))
	}

	result, err := e.marshaler.Run(func() (any, error) {
		roots, err := e.treeRoots(req.ElementHandle)
		if err != nil {
			return nil, err
		}

		switch req.Format {
		case wire.FormatXAML:
			var sb strings.Builder
			for _, root := range roots {
				e.writeXAML(&sb, root, 0)
			}
			return wire.ExportTreeResponse{
				ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
				Format:           wire.FormatXAML,
				Xaml:             sb.String(),
			}, nil

		default: // json, or unspecified treated as json
			total := 0
			const exportMaxDepth = 100
			var root *wire.VisualTreeNode
			if len(roots) == 1 {
				root, _ = e.buildTree(roots[0], 0, exportMaxDepth, e.adapter.ChildrenVisual, &total)
			} else {
				root = &wire.VisualTreeNode{TypeName: "ApplicationRoots", Depth: 0}
				for _, r := range roots {
					child, _ := e.buildTree(r, 1, exportMaxDepth, e.adapter.ChildrenVisual, &total)
					root.Children = append(root.Children, child)
				}
			}
			return wire.ExportTreeResponse{
				ResponseEnvelope: wire.ResponseEnvelope{RequestID: req.RequestID, Success: true},
				Format:           wire.FormatJSON,
				Tree:             root,
			}, nil
		}
	}, e.marshalTimeout)

	if err != nil {
		kind, msg := asErr(err)
		return wire.NewErrorResponse(req.RequestID, errString(kind, msg))
	}
	return result
}

// writeXAML renders node and its visual children as the pretty-printed,
// two-space-indented textual form ExportTree's xaml format specifies.
func (e *Endpoint) writeXAML(sb *strings.Builder, node adapter.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	shortType := e.adapter.ShortTypeName(node)
	name, hasName := e.adapter.Name(node)

	open := "<" + shortType
	if hasName {
		open += ` x:Name="` + name + `"`
	}

	children := e.adapter.ChildrenVisual(node)
	if len(children) == 0 {
		sb.WriteString(indent + open + " />\n")
		return
	}

	sb.WriteString(indent + open + ">\n")
	for _, child := range children {
		e.writeXAML(sb, child, depth+1)
	}
	sb.WriteString(indent + "</" + shortType + ">\n")
}
