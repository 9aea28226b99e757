package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	cfgpkg "voxmatch/internal/config"
	"voxmatch/internal/storage"
)

const (
	wavContentType  = "audio/wav"
	mp3ContentType  = "audio/mpeg"
	jsonContentType = "application/json"
	cacheSession    = "private, max-age=86400"
	cacheLatest     = "private, max-age=300"
)

type archiver interface {
	UploadFile(ctx context.Context, key, localPath, contentType, cacheControl string) error
	PromoteToLatest(ctx context.Context, srcKey, filename, contentType, cacheControl string) error
	KeyForSession(t time.Time, sessionID, filename string) string
}

var newArchive = func(ctx context.Context, bucket, prefix, region string) (archiver, error) {
	return storage.New(ctx, bucket, prefix, region)
}

// voxmatch archive
func cmdArchive(args []string) error {
	var cf commonFlags
	var bucket, prefix, region stringFlag
	var latest boolFlag
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	in := fs.String("in", "", "Session clip to upload (required)")
	result := fs.String("result", "", "Result manifest JSON to upload alongside the clip")
	session := fs.String("session", "", "Session ID; generated when empty")
	fs.Var(&bucket, "bucket", "S3 bucket name")
	fs.Var(&prefix, "prefix", "S3 key prefix")
	fs.Var(&region, "region", "AWS region (defaults from env)")
	fs.Var(&latest, "latest", "Also promote the uploads to the latest/ keys")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if *in == "" {
		return errors.New("--in is required")
	}

	fileCfg, err := cfgpkg.LoadFile(cf.config)
	if err != nil {
		return err
	}
	envOv, secrets := cfgpkg.FromEnv()
	var flagOv cfgpkg.Overrides
	if bucket.set {
		flagOv.S3Bucket = &bucket.v
	}
	if prefix.set {
		flagOv.S3Prefix = &prefix.v
	}
	if region.set {
		flagOv.Region = &region.v
	}
	cfg := cfgpkg.Merge(fileCfg, envOv, flagOv, secrets)

	if err := cfgpkg.ValidateForArchive(cfg); err != nil {
		return err
	}

	sessionID := *session
	if sessionID == "" {
		sessionID = storage.NewSessionID()
	}

	arc, err := newArchive(context.Background(), cfg.S3Bucket, cfg.S3Prefix, cfg.Region)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	clipName := filepath.Base(*in)
	if err := uploadSessionFile(context.Background(), arc, now, sessionID, clipName, *in, clipContentType(clipName), latest.v); err != nil {
		return err
	}
	if *result != "" {
		if err := uploadSessionFile(context.Background(), arc, now, sessionID, "result.json", *result, jsonContentType, latest.v); err != nil {
			return err
		}
	}

	slog.Info(
		"archive completed",
		"session", sessionID,
		"bucket", cfg.S3Bucket,
		"prefix", cfg.S3Prefix,
		"region", cfg.Region,
		"latest", latest.v,
	)
	return nil
}

func uploadSessionFile(ctx context.Context, arc archiver, now time.Time, sessionID, filename, localPath, contentType string, promote bool) error {
	if _, err := os.Stat(localPath); err != nil {
		return err
	}
	key := arc.KeyForSession(now, sessionID, filename)
	if err := arc.UploadFile(ctx, key, localPath, contentType, cacheSession); err != nil {
		return err
	}
	if promote {
		if err := arc.PromoteToLatest(ctx, key, filename, contentType, cacheLatest); err != nil {
			return err
		}
	}
	return nil
}

func clipContentType(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".mp3") {
		return mp3ContentType
	}
	return wavContentType
}
