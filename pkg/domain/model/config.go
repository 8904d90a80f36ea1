package model

// Section groups packages under a heading of the dashboard
type Section struct {
	Name     string     `yaml:"name,omitempty"`
	Packages []*Package `yaml:"packages"`

	Extra map[string]any `yaml:",inline"`
}

// Config is the ordered list of dashboard sections
type Config struct {
	Sections []*Section
}

// Packages returns every package of every section in configuration order
func (c *Config) Packages() []*Package {
	var pkgs []*Package
	for _, s := range c.Sections {
		pkgs = append(pkgs, s.Packages...)
	}
	return pkgs
}
