package source

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Export *Export
	Err    error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Read() (*Export, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Export == nil {
		return &Export{AbilityNames: map[string]string{}}, nil
	}
	return m.Export, nil
}
