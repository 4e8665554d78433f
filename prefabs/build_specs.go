package prefabs

import "gopkg.in/yaml.v3"

// ApplyOverrides returns base with the yaml-tagged fields named in props
// replaced. Keys that match no field are ignored.
func ApplyOverrides[T any](base T, props map[string]any) (T, error) {
	if len(props) == 0 {
		return base, nil
	}
	b, err := yaml.Marshal(props)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}
