package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

type fakeArchiver struct {
	uploads  []string
	promotes []string
}

func (f *fakeArchiver) UploadFile(ctx context.Context, key, localPath, contentType, cacheControl string) error {
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeArchiver) PromoteToLatest(ctx context.Context, srcKey, filename, contentType, cacheControl string) error {
	f.promotes = append(f.promotes, filename)
	return nil
}

func (f *fakeArchiver) KeyForSession(t time.Time, sessionID, filename string) string {
	return "prefix/" + sessionID + "/" + filename
}

func hookArchiver(t *testing.T, fake *fakeArchiver) {
	t.Helper()
	orig := newArchive
	t.Cleanup(func() { newArchive = orig })
	newArchive = func(ctx context.Context, bucket, prefix, region string) (archiver, error) {
		return fake, nil
	}
}

func TestArchiveUploadsClipOnly(t *testing.T) {
	fake := &fakeArchiver{}
	hookArchiver(t, fake)

	tmp := chdirTemp(t)
	clip := tmp + "/clip.wav"
	if err := os.WriteFile(clip, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}

	if code := run([]string{"archive", "--in", clip, "--bucket=b", "--region=us-west-2", "--session=s-1"}); code != 0 {
		t.Fatalf("archive returned non-zero: %d", code)
	}
	if len(fake.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(fake.uploads))
	}
	if !strings.HasSuffix(fake.uploads[0], "s-1/clip.wav") {
		t.Fatalf("unexpected key: %s", fake.uploads[0])
	}
	if len(fake.promotes) != 0 {
		t.Fatalf("expected no promotions, got %d", len(fake.promotes))
	}
}

func TestArchiveUploadsResultAndPromotes(t *testing.T) {
	fake := &fakeArchiver{}
	hookArchiver(t, fake)

	tmp := chdirTemp(t)
	clip := tmp + "/clip.wav"
	result := tmp + "/result.json"
	if err := os.WriteFile(clip, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	if err := os.WriteFile(result, []byte(`{"transcription":"hi"}`), 0o644); err != nil {
		t.Fatalf("write result: %v", err)
	}

	if code := run([]string{"archive", "--in", clip, "--result", result, "--bucket=b", "--region=us-west-2", "--latest"}); code != 0 {
		t.Fatalf("archive returned non-zero: %d", code)
	}
	if len(fake.uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(fake.uploads))
	}
	if len(fake.promotes) != 2 {
		t.Fatalf("expected 2 promotions, got %d", len(fake.promotes))
	}
}

func TestArchiveRequiresBucket(t *testing.T) {
	tmp := chdirTemp(t)
	clip := tmp + "/clip.wav"
	if err := os.WriteFile(clip, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	t.Setenv("AWS_S3_BUCKET", "")
	if code := run([]string{"archive", "--in", clip, "--region=us-west-2"}); code == 0 {
		t.Fatalf("expected non-zero without bucket")
	}
}
