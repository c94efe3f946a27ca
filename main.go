package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/urfave/cli/v2"

	"github.com/abtestlabs/campaignstack/config"
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/repository"
	"github.com/abtestlabs/campaignstack/internal/tracing"
	"github.com/abtestlabs/campaignstack/internal/utils"
	"github.com/abtestlabs/campaignstack/services"
)

type app struct {
	cfg          *config.Config
	log          logger.Logger
	services     *services.Services
	tracerCloser io.Closer
}

func (a *app) close() {
	if a.tracerCloser != nil {
		a.tracerCloser.Close()
	}
}

func bootstrap(c *cli.Context) (*app, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)

	repos, err := repository.InitRepositories(appLogger, cfg.StorageConfig)
	if err != nil {
		closer.Close()
		return nil, err
	}

	svcs, err := services.InitServices(c.Context, cfg, appLogger, repos, os.Stdin, os.Stdout)
	if err != nil {
		closer.Close()
		return nil, err
	}

	return &app{
		cfg:          cfg,
		log:          appLogger,
		services:     svcs,
		tracerCloser: closer,
	}, nil
}

func main() {
	cliApp := &cli.App{
		Name:  "campaignstack",
		Usage: "A/B-testing campaign API demo client",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Evaluate random strategies, then print remaining attempts and the leaderboard",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of strategy evaluations (defaults to CAMPAIGN_EVALUATIONS)",
					},
				},
				Action: runAction,
			},
			{
				Name:   "results",
				Usage:  "Print the locally stored evaluation history",
				Action: resultsAction,
			},
			{
				Name:   "remaining",
				Usage:  "Print the remaining campaign trials",
				Action: remainingAction,
			},
			{
				Name:   "leaderboard",
				Usage:  "Print the current leaderboard",
				Action: leaderboardAction,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAction(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	count := c.Int("count")
	if count <= 0 {
		count = a.cfg.RunnerConfig.Evaluations
	}

	runID := utils.GenerateNanoIDWithPrefix("run", 12)

	span, ctx := tracing.StartTracerSpan(c.Context, "campaignstack.run")
	tracing.TagRunId(span, runID)
	defer span.Finish()

	if traceID := tracing.GetTraceId(span); traceID != "" {
		a.log.Infof("Starting evaluation run %s trace %s (%d evaluations)", runID, traceID, count)
	} else {
		a.log.Infof("Starting evaluation run %s (%d evaluations)", runID, count)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < count; i++ {
		strategy := rng.Intn(a.cfg.RunnerConfig.MaxStrategy + 1)

		opened, err := a.services.EvaluatorService.Evaluate(ctx, strategy)
		if err != nil {
			return err
		}

		switch {
		case opened == nil:
			fmt.Printf("Unable to evaluate strategy %d due to rate limiting or other error\n", strategy)
		case *opened == 1:
			fmt.Printf("Strategy %d result: Opened\n", strategy)
		default:
			fmt.Printf("Strategy %d result: Not Opened\n", strategy)
		}
	}

	remaining, err := a.services.CampaignService.FetchRemaining(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Remaining attempts: %s\n", string(remaining))

	text, err := a.services.CampaignService.LeaderboardText(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\nLeaderboard:")
	fmt.Println(text)

	return nil
}

func resultsAction(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.services.EvaluatorService.GetResults(c.Context)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results stored yet.")
		return nil
	}

	for _, result := range results {
		fmt.Printf("%s  strategy=%d opened=%d timezone=%s\n",
			result.OccurredAt.Format(time.DateTime), result.Strategy, result.Opened, result.Timezone)
	}

	return nil
}

func remainingAction(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	remaining, err := a.services.CampaignService.FetchRemaining(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Remaining attempts: %s\n", string(remaining))
	return nil
}

func leaderboardAction(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	text, err := a.services.CampaignService.LeaderboardText(c.Context)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
