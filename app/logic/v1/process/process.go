package process

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/jayline-services/assist/app/core"
	v1 "github.com/jayline-services/assist/app/logic/v1"
	"github.com/jayline-services/assist/pkg/safe"
)

type Process struct {
	cron *cron.Cron
	core *core.Core
}

var p *Process

func NewProcess(core *core.Core) *Process {
	p = &Process{
		cron: cron.New(),
		core: core,
	}
	return p
}

func (p *Process) Cron() *cron.Cron {
	return p.cron
}

// Start wires the scheduled jobs and launches the cron loop. No schedule
// configured means nothing to run.
func (p *Process) Start() {
	indexCron := p.core.Cfg().Index.Cron
	if indexCron != "" {
		if _, err := p.cron.AddFunc(indexCron, func() {
			safe.Run(func() {
				report, err := v1.NewIndexLogic(context.Background(), p.core).Reindex()
				if err != nil {
					slog.Error("scheduled reindex failed", slog.String("error", err.Error()))
					return
				}
				slog.Info("scheduled reindex finished",
					slog.Int("indexed", report.IndexedChunks),
					slog.Int("failed", report.FailedChunks))
			})
		}); err != nil {
			slog.Error("invalid index cron expression", slog.String("cron", indexCron), slog.String("error", err.Error()))
		}
	}

	p.cron.Start()
}

func (p *Process) Stop() {
	p.cron.Stop()
}
