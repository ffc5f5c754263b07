package server

import (
	"strings"

	"github.com/lawnchairsociety/tenebrae/internal/antispam"
)

// floodClient drops commands that arrive faster than the flood limit and
// tells the player instead.
type floodClient struct {
	Client
	tracker *antispam.Tracker
}

func newFloodClient(c Client, cfg antispam.Config) Client {
	if !cfg.Enabled {
		return c
	}
	return &floodClient{Client: c, tracker: antispam.NewTracker(cfg)}
}

// ReadLine returns the next line within the limit. Blank lines pass
// through uncounted.
func (c *floodClient) ReadLine() (string, error) {
	for {
		line, err := c.Client.ReadLine()
		if err != nil || strings.TrimSpace(line) == "" {
			return line, err
		}

		result := c.tracker.Check()
		if result.Allowed {
			return line, nil
		}
		if err := c.Client.WriteLine(result.Reason + "\n"); err != nil {
			return "", err
		}
	}
}
