package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/sweepcore/sweepd/internal/app"
	"github.com/sweepcore/sweepd/internal/board"
	"github.com/sweepcore/sweepd/internal/config"
)

var (
	log = logrus.New()

	addr    string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "sweepd",
	Short: "Serve minesweeper boards over HTTP and WebSocket",
	Long: `sweepd hosts minesweeper game sessions: clients create a board,
then reveal, flag and chord cells over a JSON API or a WebSocket
command stream. Sessions live in memory and expire when idle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		log.Info("starting up, development = ", config.Development())

		ctx, stop := signal.NotifyContext(
			context.Background(),
			os.Interrupt, syscall.SIGTERM,
		)
		defer stop()

		return app.New(log, addr).Start(ctx)
	},
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	board.Log = log

	if logFile == "" {
		logFile = config.LogFile()
	}
	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.WithError(err).Fatal("unable to set up log file rotation")
		}
		log.AddHook(hook)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", config.Port(), "Address to listen on")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write rotated JSON logs to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
