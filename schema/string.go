package schema

type String string

func (s String) isSchema() {}

func (s String) String() string {
	return string(s)
}

func (s *String) Unmarshal(bs []byte) error {
	*s = String(bs)
	return nil
}
