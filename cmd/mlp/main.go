// Package main provides the mlp CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/born-ml/mlp/internal/train"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "mlp:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "mlp %s\n", version)
		return nil
	case "train":
		return runTrain(ctx, args[1:], out)
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "mlp - feed-forward network training on synthetic blobs")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  train      Train Linear -> ReLU -> Linear on Gaussian blobs")
}

func runTrain(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(out)
	samples := fs.Int("samples", 500, "Number of points")
	features := fs.Int("features", 4, "Features per point")
	classes := fs.Int("classes", 3, "Number of blobs")
	hidden := fs.Int("hidden", 16, "Hidden layer width")
	epochs := fs.Int("epochs", 100, "Number of full-batch steps")
	lr := fs.Float64("lr", 0.1, "Learning rate (must be > 0)")
	decay := fs.Float64("weight-decay", optim.DefaultWeightDecay, "L2 weight decay")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	seed := fs.Uint64("seed", 42, "PRNG seed")
	logEvery := fs.Int("log-every", 10, "Log every N steps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := (tensor.Shape{*samples, *features, *classes, *hidden}).Validate(); err != nil {
		return fmt.Errorf("samples, features, classes and hidden must be positive: %w", err)
	}
	if !(*lr > 0) {
		return fmt.Errorf("lr must be positive, got %v", *lr)
	}

	data, err := dataset.Blobs(dataset.BlobsConfig{
		Samples:  *samples,
		Features: *features,
		Centers:  *classes,
		Seed:     *seed,
	})
	if err != nil {
		return err
	}

	_, inFeatures := data.X.Dims()
	src := rand.NewPCG(*seed, *seed+1)
	model := nn.NewSequential(
		nn.NewLinear(inFeatures, *hidden, nn.WithSource(src)),
		nn.NewReLU(),
		nn.NewLinear(*hidden, data.Classes, nn.WithSource(src)),
	)
	opt, err := optim.NewSGD([]nn.Module{model}, optim.SGDConfig{
		LR:          *lr,
		WeightDecay: *decay,
		Momentum:    *momentum,
	})
	if err != nil {
		return err
	}

	trainer := &train.Trainer{
		Model:     model,
		Loss:      nn.NewCrossEntropyLoss(),
		Optimizer: opt,
		Logger:    slog.New(slog.NewTextHandler(out, nil)),
	}

	target := data.OneHot()
	history, err := trainer.Fit(ctx, train.Config{Epochs: *epochs, LogEvery: *logEvery}, data.X, target)
	if err != nil {
		return err
	}

	loss, acc, err := trainer.Evaluate(data.X, target)
	if err != nil {
		return err
	}
	trainer.Logger.Info("done", "initial_loss", history.Initial(), "final_loss", loss, "accuracy", acc)
	return nil
}
