package descriptor

// Manifest declares the resources and tasks of one binding domain.
type Manifest struct {
	Name      string      `json:"name,omitempty" yaml:"name,omitempty"`
	Resources []*Resource `json:"resources,omitempty" yaml:"resources,omitempty"`
	Tasks     []*Task     `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// Resource declares a typed singleton with an optional initial value. Type
// is resolved against the extension type registry.
type Resource struct {
	Name  string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Type  string                 `json:"type" yaml:"type"`
	Value map[string]interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// Task declares a named task and its access entries.
type Task struct {
	Name   string   `json:"name" yaml:"name"`
	Access []string `json:"access,omitempty" yaml:"access,omitempty"`
}

// Access modes recognised in manifest entries. Write implies the read bit,
// matching what a mutable pointer parameter derives.
const (
	ModeRead  = "read"
	ModeWrite = "write"
)

// Access is one parsed manifest access entry.
type Access struct {
	Name     string
	DataType string
	Mode     string
}
