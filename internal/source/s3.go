// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/henoctshimanga/tfinv/internal/aws"
	"github.com/henoctshimanga/tfinv/internal/bundle"
)

// defaultKeyPrefix is terraform's workspace_key_prefix default.
const defaultKeyPrefix = "env:"

// S3Source downloads the environment's state object and extracts its
// outputs table. Workspaced states live at <prefix>/<env>/<key>.
type S3Source struct {
	Env    string
	Bucket string
	Key    string
	Prefix string
	Region string
}

func newS3Source(cfg json.RawMessage, env string) (*S3Source, error) {
	var beCfg struct {
		Bucket string `json:"bucket"`
		Key    string `json:"key"`
		Prefix string `json:"workspace_key_prefix"`
		Region string `json:"region"`
	}
	if err := json.Unmarshal(cfg, &beCfg); err != nil {
		return nil, fmt.Errorf("bad s3 backend config: %w", err)
	}
	if beCfg.Prefix == "" {
		beCfg.Prefix = defaultKeyPrefix
	}

	return &S3Source{
		Env:    env,
		Bucket: beCfg.Bucket,
		Key:    beCfg.Key,
		Prefix: beCfg.Prefix,
		Region: beCfg.Region,
	}, nil
}

func (s *S3Source) Outputs(ctx context.Context) (bundle.Bundle, error) {
	cfg, err := awsx.LoadConfig(ctx, awsx.WithRegion(s.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	svc := awsx.NewS3(cfg)
	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.stateKey()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get state object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state object body: %w", err)
	}

	return bundle.FromState(data)
}

func (s *S3Source) stateKey() string {
	return path.Join(s.Prefix, s.Env, s.Key)
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.stateKey())
}
