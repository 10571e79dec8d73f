package domain

// ToolID identifies a registered transform.
type ToolID string

// ParamType is the JSON-ish type of a tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
	ParamBytes   ParamType = "bytes"
)

// Param describes one input field of a tool.
type Param struct {
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Type        ParamType `json:"type" yaml:"type" mapstructure:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Enum        []string  `json:"enum,omitempty" yaml:"enum,omitempty" mapstructure:"enum"`
}

// Tool defines metadata about a transform available in the registry.
// This is used for generating CLI help, MCP schemas and the HTTP catalogue.
type Tool struct {
	ID          ToolID  `json:"id" yaml:"id" mapstructure:"id"`
	Panel       string  `json:"panel" yaml:"panel" mapstructure:"panel"`
	Title       string  `json:"title" yaml:"title" mapstructure:"title"`
	Description string  `json:"description" yaml:"description" mapstructure:"description"`
	Params      []Param `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
}

// Param returns the descriptor of the named parameter.
func (t Tool) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
