package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/supermega/opsd/internal/integrations"
	"github.com/supermega/opsd/internal/integrations/mailer"
)

// DailyTasks is the fixed daily batch. The platform-side actions (backups,
// dependency refresh, report generation) run on the hosting side; here they
// are represented as observable effects so a missed day shows up in the
// outcome sink.
func DailyTasks() []integrations.Effect {
	placeholder := func(name string) integrations.Effect {
		return integrations.Effect{
			Name: name,
			Run: func(_ context.Context) error {
				slog.With("component", "maintenance-tasks").Info("task completed", slog.String("task", name))
				return nil
			},
		}
	}
	return []integrations.Effect{
		placeholder("backup-data"),
		placeholder("update-dependencies"),
		placeholder("clean-logs"),
		placeholder("generate-reports"),
		placeholder("optimize-performance"),
	}
}

// HourlyTasks probes the external collaborators the platform depends on.
func HourlyTasks(siteURL string, mail mailer.Sender) []integrations.Effect {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetTimeout(10 * time.Second)

	return []integrations.Effect{
		{
			Name: "site-probe",
			Run: func(ctx context.Context) error {
				resp, err := client.R().SetContext(ctx).Get(siteURL)
				if err != nil {
					return err
				}
				if resp.IsError() {
					return fmt.Errorf("site probe: status %d", resp.StatusCode())
				}
				return nil
			},
		},
		{
			Name: "smtp-probe",
			Run: func(_ context.Context) error {
				return mail.Check()
			},
		},
	}
}
