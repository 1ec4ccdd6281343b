package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/markop/tubepulse.api/data/repos"
	"github.com/markop/tubepulse.api/notifiers"
)

type Notifier struct {
	requestRepo *repos.RequestRepo
	discord     *notifiers.Discord
}

func NewNotifier(discord *notifiers.Discord, requestRepo *repos.RequestRepo) *Notifier {
	return &Notifier{
		requestRepo: requestRepo,
		discord:     discord,
	}
}

func (n *Notifier) Start(ctx context.Context) {
	if !n.discord.Enabled() {
		slog.Info("discord webhook not configured, notifier disabled")
		return
	}

	if err := n.notify(ctx); err != nil {
		slog.Error("notify:", "error", err)
	}

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := n.notify(ctx); err != nil {
					slog.Error("notify:", "error", err)
				}
			}
		}
	}()
}

func (n *Notifier) notify(ctx context.Context) error {
	unnotified, err := n.requestRepo.GetUnnotifiedRequests()
	if err != nil {
		return errors.Wrap(err, "notify: get unnotified requests")
	}
	if len(unnotified) == 0 {
		return nil
	}

	sent := make([]uuid.UUID, 0, len(unnotified))
	for _, rec := range unnotified {
		if err := n.discord.VideoProcessed(ctx, rec); err != nil {
			slog.Error("notify: send webhook", "request_id", rec.ID, "error", err)
			continue
		}
		sent = append(sent, rec.ID)
	}

	if err := n.requestRepo.MarkNotified(sent, time.Now()); err != nil {
		return errors.Wrap(err, "notify: mark notified")
	}

	return nil
}
