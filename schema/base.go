package schema

// Base is a base schema for embedding into tool inputs and outputs
type Base struct{}

func (r Base) isSchema() {}

// String implements Schema interface
func (r Base) String() string {
	return ""
}
