package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amenzbedi22/autoweeklyreport/internal/activity"
	"github.com/amenzbedi22/autoweeklyreport/internal/config"
	"github.com/amenzbedi22/autoweeklyreport/internal/db"
	"github.com/amenzbedi22/autoweeklyreport/internal/github"
	"github.com/amenzbedi22/autoweeklyreport/internal/notifier"
	"github.com/amenzbedi22/autoweeklyreport/internal/report"
)

func main() {
	// Root context for the run; the external scheduler that invokes this
	// binary owns the weekly cadence.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *db.DB
	if cfg.DBPath != "" {
		store, err = db.InitDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open report history: %v", err)
		}
		defer func() { _ = store.Close() }()
	}

	desc := report.NewDescriptor(time.Now())
	content := report.Render(desc)

	var kpi float64
	if cfg.GithubEnabled() {
		summary, err := collect(ctx, cfg, desc.Date)
		if err != nil {
			log.Printf("Activity collection failed, writing skeleton report: %v", err)
		} else {
			prev := previousKPI(ctx, store, cfg.ReportsDir, desc)
			content = report.RenderSummary(desc, summary, prev)
			kpi = summary.TeamKPI()
		}
	}

	path, err := report.Save(cfg.ReportsDir, desc, content)
	if err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if store != nil {
		rec := db.ReportRecord{Year: desc.Year, Week: desc.Week, Path: path, KPI: kpi}
		if err := store.SaveReport(ctx, rec); err != nil {
			log.Printf("Failed to record report history: %v", err)
		}
	}

	notify(ctx, cfg, desc, path, kpi)
	log.Printf("Report generated: %s", path)
}

func collect(ctx context.Context, cfg *config.Config, now time.Time) (*activity.Summary, error) {
	client, err := github.NewClient(cfg.GithubToken, cfg.GithubRepo, cfg.GithubOwner, cfg.ProjectNumber)
	if err != nil {
		return nil, err
	}
	return activity.Collect(ctx, client, now)
}

// previousKPI prefers the history store and falls back to scanning older
// report files, so the trend survives a missing or freshly created database.
func previousKPI(ctx context.Context, store *db.DB, dir string, desc report.Descriptor) float64 {
	if store != nil {
		kpi, found, err := store.PreviousKPI(ctx, desc.Year, desc.Week)
		if err != nil {
			log.Printf("Failed to read previous KPI from history: %v", err)
		} else if found {
			return kpi
		}
	}

	kpi, err := report.PreviousWeekKPI(dir, desc)
	if err != nil {
		log.Printf("Failed to scan previous reports: %v", err)
		return 0
	}
	return kpi
}

func notify(ctx context.Context, cfg *config.Config, desc report.Descriptor, path string, kpi float64) {
	var notifiers []notifier.Notifier

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Failed to initialize telegram notifier: %v", err)
		} else {
			notifiers = append(notifiers, tg)
		}
	}
	if cfg.DiscordBotToken != "" && cfg.DiscordChannelID != "" {
		dc, err := notifier.NewDiscordNotifier(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			log.Printf("Failed to initialize discord notifier: %v", err)
		} else {
			notifiers = append(notifiers, dc)
		}
	}

	if len(notifiers) == 0 {
		return
	}

	message := fmt.Sprintf("✅ Weekly report for week %d, %d generated: %s (KPI: %.2f)",
		desc.Week, desc.Year, path, kpi)
	for _, n := range notifiers {
		if err := n.Send(ctx, message); err != nil {
			log.Printf("Failed to notify via %s: %v", n.Name(), err)
		}
	}
}
