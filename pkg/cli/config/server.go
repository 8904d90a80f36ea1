package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr     string
	Snapshot string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_ADDR"),
		},
		&cli.StringFlag{
			Name:        "snapshot",
			Usage:       "Snapshot file served to the renderer",
			Value:       "generated.yml",
			Destination: &c.Snapshot,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_SNAPSHOT"),
		},
	}
}
