// Command tailwrite extends a prose prompt with completions from the
// hosted Inference API and prints the result as wrapped paragraphs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/tailwrite/tailwrite"
	"github.com/tailwrite/tailwrite/inference"
	"github.com/tailwrite/tailwrite/profile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cmd := &cli.Command{
		Name:  "tailwrite",
		Usage: "extend a prose prompt with model completions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prompt-file",
				Usage: "file holding the prompt (default: stdin)",
			},
			&cli.StringFlag{
				Name:  "token-file",
				Value: ".hf_token",
				Usage: "file holding the API token",
			},
			&cli.StringFlag{
				Name:  "env",
				Value: ".env",
				Usage: "env file consulted when the token file is absent",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "model repository id (overrides the profile)",
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "YAML generation profile",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 1,
				Usage: "number of completion rounds",
			},
			&cli.BoolFlag{
				Name:  "wait-for-model",
				Usage: "wait for the model to load instead of failing fast",
			},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("tailwrite failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	prompt, err := readPrompt(cmd.String("prompt-file"))
	if err != nil {
		return err
	}

	var prof *profile.Profile
	if path := cmd.String("profile"); path != "" {
		prof, err = profile.ParseFile(path)
		if err != nil {
			return err
		}
	}

	model := cmd.String("model")
	if model == "" && prof != nil {
		model = prof.Model
	}

	token, err := loadToken(cmd.String("token-file"), cmd.String("env"))
	if err != nil {
		return err
	}

	opts := []inference.Option{inference.WithModel(model)}
	if cmd.Bool("wait-for-model") {
		opts = append(opts, inference.WithWaitForModel(true))
	}
	client, err := inference.NewClient(token, opts...)
	if err != nil {
		return err
	}

	var sessionOpts []tailwrite.Option
	if prof != nil {
		sessionOpts = prof.Options()
	}
	session, err := tailwrite.New(client, prompt, sessionOpts...)
	if err != nil {
		return err
	}

	rounds := int(cmd.Int("rounds"))
	for round := 1; round <= rounds; round++ {
		start := time.Now()
		if err := session.Complete(ctx); err != nil {
			return err
		}
		slog.Info("completion accepted",
			"model", client.Model(),
			"round", round,
			"duration", time.Since(start),
			"chars", len(session.Text()))
	}

	_, err = fmt.Fprintln(cmd.Writer, session)
	return err
}

// loadToken prefers the token file and falls back to the environment,
// loading the env file first if one exists.
func loadToken(tokenFile, envFile string) (string, error) {
	if token, err := inference.TokenFromFile(tokenFile); err == nil {
		return token, nil
	}
	if envFile != "" {
		_ = godotenv.Load(envFile) // a missing env file is fine
	}
	return inference.TokenFromEnv()
}

func readPrompt(path string) (string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is a CLI argument
	}
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return string(data), nil
}
