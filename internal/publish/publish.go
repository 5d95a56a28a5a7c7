// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/forkctl/forkctl/internal/artifact"
	"github.com/forkctl/forkctl/internal/log"
)

// Target is a parsed S3 destination.
type Target struct {
	Bucket string
	Prefix string
}

// ParseTarget parses an s3://bucket[/prefix] URL into a Target. The prefix
// is optional; leading and trailing slashes are trimmed.
func ParseTarget(raw string) (Target, error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return Target{}, fmt.Errorf("invalid publish target %q: expected s3://bucket[/prefix]", raw)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Target{}, fmt.Errorf("invalid publish target %q: missing bucket", raw)
	}
	return Target{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// Key returns the object key for name under the target prefix.
func (t Target) Key(name string) string {
	if t.Prefix == "" {
		return name
	}
	return path.Join(t.Prefix, name)
}

func (t Target) String() string {
	if t.Prefix == "" {
		return "s3://" + t.Bucket
	}
	return "s3://" + t.Bucket + "/" + t.Prefix
}

// objectPutter is the slice of the S3 API the publisher needs. The concrete
// client from aws.NewS3 satisfies it; tests substitute a fake.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Publisher uploads report output to a single S3 target.
type Publisher struct {
	client objectPutter
	target Target
}

// New returns a Publisher that uploads via client to target.
func New(client objectPutter, target Target) Publisher {
	return Publisher{client: client, target: target}
}

// Report uploads the store's rendered summary plus every diff artifact
// currently on disk, and returns the number of objects uploaded. The
// summary is uploaded first so a partially failed run still publishes the
// overview.
func (p Publisher) Report(ctx context.Context, store artifact.Store) (int, error) {
	if err := p.upload(ctx, store.SummaryPath(), artifact.SummaryName, "text/markdown"); err != nil {
		return 0, err
	}
	uploaded := 1

	crates, err := store.List()
	if err != nil {
		return uploaded, err
	}
	for _, crate := range crates {
		name := crate + artifact.Ext
		if err := p.upload(ctx, store.Path(crate), name, "text/x-diff"); err != nil {
			return uploaded, err
		}
		uploaded++
	}
	return uploaded, nil
}

func (p Publisher) upload(ctx context.Context, file, name, contentType string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s for publishing: %w", file, err)
	}

	key := p.target.Key(name)
	_, err = p.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(p.target.Bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", name, p.target.Bucket, key, err)
	}
	log.Debugf("published: key=%s bytes=%d", key, len(data))
	return nil
}
