// Package archive keeps a copy of every analysis request submitted to
// the engine in S3-compatible object storage. The archived JSON is what
// the engine actually received, so a run can be audited or replayed
// after the project tree has changed.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/profilenet/backend/internal/util"
	"github.com/profilenet/backend/pkg/wire"
)

// Archive is nil-safe: a nil *Archive skips every operation, so
// deployments without object storage just pass nil through.
type Archive struct {
	client *s3.Client
	bucket string
}

// New builds an archive from AWS_* environment variables. Returns nil
// (not an error) when no endpoint is configured.
func New(ctx context.Context) (*Archive, error) {
	endpoint := util.GetEnv("AWS_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(util.GetEnv("AWS_REGION")),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			util.GetEnv("AWS_ACCESS_KEY"),
			util.GetEnv("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &Archive{
		client: client,
		bucket: util.GetEnv("AWS_BUCKET"),
	}, nil
}

func requestKey(projectID, requestID string) string {
	return fmt.Sprintf("projects/%s/requests/%s.json", projectID, requestID)
}

// PutRequest stores the submitted request under the project's folder,
// keyed by the engine-assigned request id.
func (a *Archive) PutRequest(ctx context.Context, requestID string, req *wire.StartAnalysisRequest) error {
	if a == nil {
		return nil
	}

	body, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	return util.RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(requestKey(req.ID, requestID)),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("upload request archive: %w", err)
		}
		return nil
	})
}

// ListRequests returns the archived request keys for a project.
func (a *Archive) ListRequests(ctx context.Context, projectID string) ([]string, error) {
	if a == nil {
		return nil, nil
	}

	prefix := fmt.Sprintf("projects/%s/requests/", projectID)

	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	}
	for {
		out, err := a.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list request archive: %w", err)
		}
		for _, obj := range out.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
		if out.IsTruncated != nil && *out.IsTruncated {
			input.ContinuationToken = out.NextContinuationToken
		} else {
			break
		}
	}
	return keys, nil
}

// DeleteProject removes everything archived under a project's folder.
// Called when the project itself is deleted.
func (a *Archive) DeleteProject(ctx context.Context, projectID string) error {
	if a == nil {
		return nil
	}

	prefix := fmt.Sprintf("projects/%s/", projectID)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	}
	for {
		out, err := a.client.ListObjectsV2(ctx, input)
		if err != nil {
			return fmt.Errorf("list project archive: %w", err)
		}
		if len(out.Contents) == 0 {
			break
		}

		var toDelete []types.ObjectIdentifier
		for _, obj := range out.Contents {
			toDelete = append(toDelete, types.ObjectIdentifier{Key: obj.Key})
		}

		_, err = a.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(a.bucket),
			Delete: &types.Delete{
				Objects: toDelete,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("delete project archive: %w", err)
		}

		if out.IsTruncated != nil && *out.IsTruncated {
			input.ContinuationToken = out.NextContinuationToken
		} else {
			break
		}
	}

	return nil
}
