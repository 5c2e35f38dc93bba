package wire

// ValueSource is why a property currently holds the value it does.
type ValueSource string

const (
	SourceDefault             ValueSource = "Default"
	SourceInherited           ValueSource = "Inherited"
	SourceDefaultStyle        ValueSource = "DefaultStyle"
	SourceDefaultStyleTrigger ValueSource = "DefaultStyleTrigger"
	SourceStyle               ValueSource = "Style"
	SourceTemplateTrigger     ValueSource = "TemplateTrigger"
	SourceStyleTrigger        ValueSource = "StyleTrigger"
	SourceImplicitStyle       ValueSource = "ImplicitStyle"
	SourceParentTemplate      ValueSource = "ParentTemplate"
	SourceParentTemplateTrigger ValueSource = "ParentTemplateTrigger"
	SourceLocal               ValueSource = "Local"
)

// BindingMode mirrors WPF's Binding.Mode.
type BindingMode string

const (
	ModeOneWay         BindingMode = "OneWay"
	ModeTwoWay         BindingMode = "TwoWay"
	ModeOneWayToSource BindingMode = "OneWayToSource"
	ModeOneTime        BindingMode = "OneTime"
)

// BindingStatus is the live state of a data binding.
type BindingStatus string

const (
	BindingActive            BindingStatus = "Active"
	BindingInactive           BindingStatus = "Inactive"
	BindingDetached           BindingStatus = "Detached"
	BindingPathError          BindingStatus = "PathError"
	BindingUpdateTargetError  BindingStatus = "UpdateTargetError"
	BindingUpdateSourceError  BindingStatus = "UpdateSourceError"
	BindingAsyncPending       BindingStatus = "AsyncPending"
	BindingUnattached         BindingStatus = "Unattached"
	BindingError              BindingStatus = "Error"
)

// BindingErrorType classifies a captured binding-trace failure.
type BindingErrorType string

const (
	ErrTypeSourceNotFound  BindingErrorType = "SourceNotFound"
	ErrTypePathError       BindingErrorType = "PathError"
	ErrTypeConversionError BindingErrorType = "ConversionError"
	ErrTypeValidationError BindingErrorType = "ValidationError"
	ErrTypeUpdateSourceError BindingErrorType = "UpdateSourceError"
	ErrTypeUnknown         BindingErrorType = "Unknown"
)

// ResourceScope selects where GetResources looks for resources.
type ResourceScope string

const (
	ScopeApplication ResourceScope = "Application"
	ScopeWindow      ResourceScope = "Window"
	ScopeElement     ResourceScope = "Element"
)

// ExportFormat selects the textual form ExportTree produces.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatXAML ExportFormat = "xaml"
)

// VisualTreeNode is the wire form of a UI node within a tree walk.
type VisualTreeNode struct {
	Handle   string            `json:"handle"`
	TypeName string            `json:"typeName"`
	Name     string            `json:"name,omitempty"`
	Depth    int               `json:"depth"`
	Children []*VisualTreeNode `json:"children"`
}

// BindingDetails is the Binding Record embedded in a PropertyRecord when
// isBinding is true.
type BindingDetails struct {
	Property      string        `json:"property"`
	Path          string        `json:"path"`
	Source        string        `json:"source"`
	Mode          BindingMode   `json:"mode"`
	UpdateTrigger string        `json:"updateTrigger,omitempty"`
	Converter     string        `json:"converter,omitempty"`
	Status        BindingStatus `json:"status"`
	HasError      bool          `json:"hasError"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	CurrentValue  string        `json:"currentValue,omitempty"`
}

// PropertyRecord describes one property read off a UI node.
type PropertyRecord struct {
	Name           string          `json:"name"`
	TypeName       string          `json:"typeName"`
	Value          string          `json:"value"`
	Source         ValueSource     `json:"source"`
	IsBinding      bool            `json:"isBinding"`
	BindingDetails *BindingDetails `json:"bindingDetails,omitempty"`
}

// BindingRecord is the response shape of GetBindings.
type BindingRecord struct {
	Property      string        `json:"property"`
	Path          string        `json:"path"`
	Source        string        `json:"source"`
	Mode          BindingMode   `json:"mode"`
	UpdateTrigger string        `json:"updateTrigger,omitempty"`
	Converter     string        `json:"converter,omitempty"`
	Status        BindingStatus `json:"status"`
	HasError      bool          `json:"hasError"`
	ErrorMessage  string        `json:"errorMessage,omitempty"`
	CurrentValue  string        `json:"currentValue,omitempty"`
}

// BindingErrorRecord is one entry captured off the framework's binding
// diagnostic trace.
type BindingErrorRecord struct {
	ElementType  string           `json:"elementType"`
	ElementName  string           `json:"elementName,omitempty"`
	Property     string           `json:"property"`
	BindingPath  string           `json:"bindingPath"`
	ErrorType    BindingErrorType `json:"errorType"`
	Message      string           `json:"message"`
	TimestampUTC string           `json:"timestamp"`
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Thickness is a left/top/right/bottom tuple (margin, padding).
type Thickness struct {
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
	B float64 `json:"b"`
}

// LayoutRecord is the response shape of GetLayoutInfo.
type LayoutRecord struct {
	ActualWidth         float64    `json:"actualWidth"`
	ActualHeight        float64    `json:"actualHeight"`
	DesiredSize         Size       `json:"desiredSize"`
	RenderSize          Size       `json:"renderSize"`
	Margin              Thickness  `json:"margin"`
	Padding             *Thickness `json:"padding,omitempty"`
	HorizontalAlignment string     `json:"horizontalAlignment"`
	VerticalAlignment   string     `json:"verticalAlignment"`
	Visibility          string     `json:"visibility"`
}

// ResourceRecord is one entry of GetResources.
type ResourceRecord struct {
	Key        string `json:"key"`
	TypeName   string `json:"typeName"`
	Value      string `json:"value"`
	Source     string `json:"source"`
	TargetType string `json:"targetType,omitempty"`
}

// StyleSetter is one property/value pair applied by a style.
type StyleSetter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// StyleTrigger is one conditional rule attached to a style.
type StyleTrigger struct {
	Kind string `json:"kind"`
}

// StyleRecord is the response shape of GetStyles.
type StyleRecord struct {
	Key                string         `json:"key,omitempty"`
	TargetType         string         `json:"targetType"`
	BasedOn            string         `json:"basedOn,omitempty"`
	Setters            []StyleSetter  `json:"setters"`
	Triggers           []StyleTrigger `json:"triggers"`
	ImplicitStyleExists bool          `json:"implicitStyleExists,omitempty"`
}
