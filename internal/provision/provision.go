package provision

import (
	"context"
	"log/slog"
	"sort"

	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/ghrepo"
	"github.com/supermega/opsd/internal/metrics"
)

// Pusher is the subset of the GitHub client provisioning needs.
type Pusher interface {
	PushFile(ctx context.Context, repo, path, content, message string) (ghrepo.Outcome, error)
}

// Provisioner pushes the boilerplate batches into both platform
// repositories. Per-file failures are logged and counted, never raised:
// one broken path must not stop the rest of the batch.
type Provisioner struct {
	l      *slog.Logger
	pusher Pusher
	cfg    config.GitHubConfig
}

func NewProvisioner(pusher Pusher, cfg config.GitHubConfig) *Provisioner {
	return &Provisioner{
		l:      slog.With(slog.String("component", "provisioner")),
		pusher: pusher,
		cfg:    cfg,
	}
}

func (p *Provisioner) log() *slog.Logger {
	if p.l != nil {
		return p.l
	}
	return slog.With(slog.String("component", "provisioner"))
}

// Run pushes both batches sequentially and returns the number of failed
// files.
func (p *Provisioner) Run(ctx context.Context) int {
	p.log().Info("setting up repositories")

	failed := 0
	failed += p.pushBatch(ctx, p.cfg.MainRepo, MainRepoFiles(), "Internal management files")
	failed += p.pushBatch(ctx, p.cfg.ClientRepo, ClientRepoFiles(), "Client-facing files")

	if failed == 0 {
		p.log().Info("repositories setup complete")
	} else {
		p.log().Warn("repositories setup finished with failures", slog.Int("failed", failed))
	}
	return failed
}

func (p *Provisioner) pushBatch(ctx context.Context, repo string, files map[string]string, message string) int {
	// stable order for logs and tests
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	failed := 0
	for _, path := range paths {
		outcome, err := p.pusher.PushFile(ctx, repo, path, files[path], message)
		if err != nil {
			failed++
			metrics.FilesProvisioned.WithLabelValues("failed").Inc()
			p.log().Error("failed to push file",
				slog.String("repo", repo),
				slog.String("path", path),
				slog.Any("err", err),
			)
			continue
		}
		metrics.FilesProvisioned.WithLabelValues(string(outcome)).Inc()
	}
	return failed
}
