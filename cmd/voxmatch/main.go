package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return 0
	}

	sub := args[0]
	switch sub {
	case "match":
		if err := cmdMatch(args[1:]); err != nil {
			slog.Error("match failed", "err", err)
			return 1
		}
		return 0
	case "hashtags":
		if err := cmdHashtags(args[1:]); err != nil {
			slog.Error("hashtags failed", "err", err)
			return 1
		}
		return 0
	case "transcribe":
		if err := cmdTranscribe(args[1:]); err != nil {
			slog.Error("transcribe failed", "err", err)
			return 1
		}
		return 0
	case "speak":
		if err := cmdSpeak(args[1:]); err != nil {
			slog.Error("speak failed", "err", err)
			return 1
		}
		return 0
	case "moderate":
		if err := cmdModerate(args[1:]); err != nil {
			slog.Error("moderate failed", "err", err)
			return 1
		}
		return 0
	case "health":
		if err := cmdHealth(args[1:]); err != nil {
			slog.Error("health failed", "err", err)
			return 1
		}
		return 0
	case "archive":
		if err := cmdArchive(args[1:]); err != nil {
			slog.Error("archive failed", "err", err)
			return 1
		}
		return 0
	case "version":
		fmt.Println(version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n\n", sub)
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `voxmatch %s

Usage:
  voxmatch <subcommand> [flags]

Subcommands:
  match       Process a voice clip for matching (topics, hashtags, spoken reply)
  hashtags    Extract topics and hashtags from a voice clip or text
  transcribe  Transcribe a voice clip with word timestamps
  speak       Synthesize speech from text to an audio file
  moderate    Run one AI moderation turn for a room conversation
  health      Probe the audio service
  archive     Upload a session clip and result manifest to S3
  version     Print version

Run "voxmatch <subcommand> -h" for flags.
`, version)
}
