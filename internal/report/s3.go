package report

import (
	"bytes"
	"encoding/json"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/constants"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/messages"
	"github.com/model-health/model-health/internal/serviceerrors"
	"github.com/model-health/model-health/pkg/api"
)

// UploadS3 writes the JSON report to the configured bucket under
// <key_prefix>/<run_id>.json. Credentials come from the default AWS
// provider chain.
func UploadS3(ctx *executioncontext.ExecutionContext, sink *config.S3SinkConfig, report *api.HealthReport) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx.Ctx, awsconfig.WithRegion(sink.Region))
	if err != nil {
		return serviceerrors.NewServiceError(messages.ReportUploadFailed, "Bucket", sink.Bucket, "Error", err.Error())
	}
	client := s3.NewFromConfig(awsCfg)

	data, err := json.Marshal(report)
	if err != nil {
		return serviceerrors.NewServiceError(messages.ReportUploadFailed, "Bucket", sink.Bucket, "Error", err.Error())
	}

	key := path.Join(sink.KeyPrefix, report.RunID+".json")
	_, err = client.PutObject(ctx.Ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sink.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return serviceerrors.NewServiceError(messages.ReportUploadFailed, "Bucket", sink.Bucket, "Error", err.Error())
	}

	ctx.Logger.Info("Report uploaded",
		constants.LOG_RUN_ID, report.RunID,
		"bucket", sink.Bucket, "key", key)
	return nil
}
