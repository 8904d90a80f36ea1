package config

import (
	"github.com/ome/status-dashboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Collect holds configuration of a collection run
type Collect struct {
	Config      string
	Output      string
	Workers     int
	MetricsFile string
	Progress    bool
}

// Flags returns CLI flags for collection configuration
func (c *Collect) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Dashboard configuration file (.yml, .yaml or .toml)",
			Value:       "dashboard.yml",
			Destination: &c.Config,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Snapshot destination, a local path or gs://bucket/object",
			Value:       "generated.yml",
			Destination: &c.Output,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_OUTPUT"),
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Number of repositories processed concurrently",
			Value:       usecase.DefaultWorkers,
			Destination: &c.Workers,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_WORKERS"),
		},
		&cli.StringFlag{
			Name:        "metrics-file",
			Usage:       "Write Prometheus textfile metrics here after a successful run",
			Destination: &c.MetricsFile,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_METRICS_FILE"),
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Show a completion counter on stderr",
			Value:       true,
			Destination: &c.Progress,
			Sources:     cli.EnvVars("STATUS_DASHBOARD_PROGRESS"),
		},
	}
}
