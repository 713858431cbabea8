// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package options

// FieldKinds are the kinds of settings form editors.
type FieldKinds int32

const (
	Select FieldKinds = iota
	TextInput
	NumberInput
	BooleanSwitch
	ColorPicker
)

var fieldKindNames = [...]string{"select", "text", "number", "boolean", "color"}

func (k FieldKinds) String() string {
	if k < 0 || int(k) >= len(fieldKindNames) {
		return "unknown"
	}
	return fieldKindNames[k]
}

func (k FieldKinds) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Choice is one entry of a [Select] field.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormField declares one option in the settings form.
type FormField struct {

	// Path is the option key.
	Path string `json:"path"`

	// Name is the display name.
	Name string `json:"name"`

	Description string `json:"description"`

	Kind FieldKinds `json:"kind"`

	// Default is the default value, as stored in [Options].
	Default any `json:"default,omitempty"`

	// Choices are the options of a [Select] field.
	Choices []Choice `json:"choices,omitempty"`

	// Min, Max and Step constrain a [NumberInput] when HasRange is set.
	HasRange bool    `json:"hasRange,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Step     float64 `json:"step,omitempty"`

	// ShowIf, if set, determines whether the field is shown for the given options.
	ShowIf func(o *Options) bool `json:"-"`
}

// Visible returns whether the field is shown for the given options.
func (f *FormField) Visible(o *Options) bool {
	return f.ShowIf == nil || f.ShowIf(o)
}

// Form returns the settings form declaration for the panel options.
func Form() []FormField {
	choices := make([]Choice, 0, ShapeTypesN)
	labels := map[ShapeTypes]string{Sphere: "Sphere", Cube: "Cube", Cone: "Cone", Custom: "Custom (from URL)"}
	for _, st := range ShapeTypesValues() {
		choices = append(choices, Choice{Label: labels[st], Value: st.String()})
	}
	return []FormField{
		{
			Path: "shapeType", Name: "Shape Type",
			Description: "The type of 3D shape to display",
			Kind:        Select, Default: Sphere.String(), Choices: choices,
		},
		{
			Path: "customModelUrl", Name: "Model File URL",
			Description: "Enter a full URL to a .glb, .gltf, .obj, or .stl file",
			Kind:        TextInput,
			ShowIf:      func(o *Options) bool { return o.ShapeType == Custom },
		},
		{
			Path: "scale", Name: "Scale",
			Description: "Uniform scale factor of the shape",
			Kind:        NumberInput, Default: DefaultScale,
			HasRange: true, Min: MinScale, Max: MaxScale, Step: 0.1,
		},
		{
			Path: "maxX", Name: "Max X Axis",
			Description: "Maximum value for the X axis, within ±1000",
			Kind:        NumberInput, Default: float64(DefaultMax),
			HasRange: true, Min: -MaxExtent, Max: MaxExtent, Step: 1,
		},
		{
			Path: "maxY", Name: "Max Y Axis",
			Description: "Maximum value for the Y axis, within ±1000",
			Kind:        NumberInput, Default: float64(DefaultMax),
			HasRange: true, Min: -MaxExtent, Max: MaxExtent, Step: 1,
		},
		{
			Path: "maxZ", Name: "Max Z Axis",
			Description: "Maximum value for the Z axis, within ±1000",
			Kind:        NumberInput, Default: float64(DefaultMax),
			HasRange: true, Min: -MaxExtent, Max: MaxExtent, Step: 1,
		},
		{
			Path: "showNegativeAxes", Name: "Show Negative Axes",
			Description: "Display the negative side of the grid and axis lines",
			Kind:        BooleanSwitch, Default: true,
		},
		{
			Path: "shapeColor", Name: "Shape Color",
			Description: "Color of the 3D shape",
			Kind:        ColorPicker, Default: DefaultShapeColor,
		},
	}
}
