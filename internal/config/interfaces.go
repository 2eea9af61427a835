package config

// ManagerInterface is what the CLI needs from a configuration store
type ManagerInterface interface {
	Path() string
	Load() (*Config, error)
	Save(*Config) error
}

var _ ManagerInterface = (*Manager)(nil)
