package catalog

import "lab-pricing/internal/model"

// Test is one catalog row: a named laboratory test with its base economics.
type Test struct {
	Lab       string
	Name      string
	Economics model.TestEconomics
}

// Provider is the lookup surface the rest of the system consumes. The engine
// itself never touches a provider; callers fetch once per run and pass the
// economics in by value.
type Provider interface {
	GetTest(lab, name string) (model.TestEconomics, error)
	ListTests(lab string) ([]Test, error)
	ListLabs() ([]string, error)
}
