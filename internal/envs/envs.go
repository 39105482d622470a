package envs

// Kind describes one numbered environment.
type Kind struct {
	// Name is displayed in rendered headers, e.g. "Theorem".
	Name string
	// Emph is the markdown emphasis delimiter wrapped around the header,
	// e.g. "**" for bold. May be empty.
	Emph string
}

// Registry maps environment keys (e.g. "thm") to their display rules.
// It is built once before rendering starts and read-only afterwards.
type Registry map[string]Kind

// Fallbacks for environments added by configuration without explicit
// name or emphasis.
const (
	DefaultName = "Environment"
	DefaultEmph = "**"
)

// Defaults returns the built-in environment set.
func Defaults() Registry {
	return Registry{
		"thm":  {Name: "Theorem", Emph: "**"},
		"lem":  {Name: "Lemma", Emph: "**"},
		"prop": {Name: "Proposition", Emph: "**"},
		"def":  {Name: "Definition", Emph: "**"},
		"rem":  {Name: "Remark", Emph: "*"},
	}
}

// Override adjusts or removes a single environment. Nil fields leave the
// existing value (or fallback, for new keys) in place.
type Override struct {
	Name   *string `yaml:"name" json:"name"`
	Emph   *string `yaml:"emph" json:"emph"`
	Ignore bool    `yaml:"ignore" json:"ignore"`
}

// Apply merges configuration overrides into the registry. Ignored keys are
// deleted, known keys are updated field by field, and unknown keys are added
// with fallback name/emphasis for whatever the override leaves unset.
func (r Registry) Apply(overrides map[string]Override) {
	for key, ov := range overrides {
		if ov.Ignore {
			delete(r, key)
			continue
		}
		kind, ok := r[key]
		if !ok {
			kind = Kind{Name: DefaultName, Emph: DefaultEmph}
		}
		if ov.Name != nil {
			kind.Name = *ov.Name
		}
		if ov.Emph != nil {
			kind.Emph = *ov.Emph
		}
		r[key] = kind
	}
}
