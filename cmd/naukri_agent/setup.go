package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/swapnil/naukri-auto-apply/internal/ai"
	"github.com/swapnil/naukri-auto-apply/internal/apply"
	"github.com/swapnil/naukri-auto-apply/internal/artifacts"
	"github.com/swapnil/naukri-auto-apply/internal/browser"
	"github.com/swapnil/naukri-auto-apply/internal/config"
	"github.com/swapnil/naukri-auto-apply/internal/matching"
	"github.com/swapnil/naukri-auto-apply/internal/observability"
	"github.com/swapnil/naukri-auto-apply/internal/report"
	"github.com/swapnil/naukri-auto-apply/internal/session"
	"github.com/swapnil/naukri-auto-apply/internal/store"
	"github.com/swapnil/naukri-auto-apply/internal/throttle"
	"github.com/swapnil/naukri-auto-apply/internal/types"
)

const defaultCounterFile = "naukri-counter.json"

// executeBatch wires the collaborators for one apply run and executes it.
// aiFlow selects the LLM matcher and its higher daily ceiling.
func executeBatch(ctx context.Context, cfg config.Config, creds config.Credentials, aiFlow bool) error {
	if cfg.JobsFile == "" {
		return fmt.Errorf("a job queue is required (--jobs or jobs_file in config)")
	}
	jobs, err := artifacts.LoadQueue(cfg.JobsFile)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Println("Job queue is empty, nothing to do")
		return nil
	}

	counterPath := cfg.CounterFile
	if counterPath == "" {
		counterPath = defaultCounterFile
	}
	tracker := throttle.NewFile(counterPath)

	br, err := browser.New(ctx, browser.Options{
		Headless: cfg.Headless,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		return err
	}
	defer br.Close()

	sessions, err := session.NewFileStore(cfg.SessionDir)
	if err != nil {
		return err
	}
	segment := session.KeyGeneral
	if cfg.ScrapeMNC {
		segment = session.KeyMNC
	}
	token, err := session.Ensure(ctx, sessions, segment, func(ctx context.Context) (*session.Token, error) {
		return br.Login(ctx, browser.Credentials{
			Username: creds.Username,
			Password: creds.Password,
		})
	})
	if err != nil {
		return err
	}
	if err := br.SetSession(ctx, token); err != nil {
		return err
	}

	writer, err := artifacts.NewWriter(cfg.ResultsDir)
	if err != nil {
		return err
	}

	opts := apply.Options{
		MNCSegment: cfg.ScrapeMNC,
		Testing:    cfg.Testing,
	}

	var matcher *ai.Matcher
	if aiFlow {
		resumeText, err := os.ReadFile(cfg.Resume)
		if err != nil {
			return fmt.Errorf("the AI flow needs a resume file: %w", err)
		}
		client, err := ai.NewGeminiClient(ctx, creds.GeminiAPIKey, "")
		if err != nil {
			return err
		}
		matcher, err = ai.NewMatcher(client, cfg.Verbose)
		if err != nil {
			return err
		}
		defer matcher.Close()

		opts.MaxApplyLimit = apply.AIFlowApplyLimit
		opts.ResumeText = string(resumeText)
		opts.InterJobDelay = 3 * time.Second
	}

	orch := apply.New(br, matching.NewScorer(), tracker, opts).
		WithReporter(buildReporter(cfg, creds)).
		WithArtifacts(writer)
	if matcher != nil {
		orch = orch.WithMatcher(matcher)
	}

	batch, err := orch.Run(ctx, jobs)
	if batch != nil {
		observability.NewPrinter(os.Stdout).PrintBatchReport(*batch)
		mirrorBatch(ctx, cfg, *batch)
	}
	return err
}

// buildReporter stacks the configured delivery channels on top of the log.
func buildReporter(cfg config.Config, creds config.Credentials) apply.Reporter {
	reporters := report.Multi{report.LogReporter{}}
	if len(cfg.Email.To) > 0 {
		reporters = append(reporters, report.NewEmailReporter(cfg.Email, nil))
	}
	if creds.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := report.NewTelegramReporter(creds.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram reporter disabled: %v", err)
		} else {
			reporters = append(reporters, tg)
		}
	}
	return reporters
}

// mirrorBatch copies the batch into the optional Postgres mirror and purges
// expired rows. Mirror failures are logged, never fatal.
func mirrorBatch(ctx context.Context, cfg config.Config, batch types.BatchReport) {
	if cfg.DatabaseURL == "" {
		return
	}
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("Record mirror unavailable: %v", err)
		return
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Printf("Record mirror schema error: %v", err)
		return
	}
	if err := db.SaveBatch(ctx, batch); err != nil {
		log.Printf("Record mirror write error: %v", err)
	}
	if purged, err := db.PurgeExpired(ctx); err != nil {
		log.Printf("Record mirror purge error: %v", err)
	} else if purged > 0 {
		log.Printf("Purged %d expired mirror records", purged)
	}
}
