// internal/services/archive_service.go
package services

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/elevendocs/elevendocs-backend/internal/config"
)

// ArchiveService mirrors finished documents to S3 as Markdown files. Archiving
// is fire-and-forget: the content store stays the source of truth and a failed
// upload never affects the generation pipeline.
type ArchiveService struct {
	s3Client *s3.S3
	config   *config.Config
	log      *logrus.Entry
}

func NewArchiveService(config *config.Config) (*ArchiveService, error) {
	log := logrus.WithField("component", "archive")

	if config.AWS.AccessKeyID == "" || config.AWS.S3Bucket == "" {
		// Return service without S3 for local development
		return &ArchiveService{config: config, log: log}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ArchiveService{
		s3Client: s3.New(sess),
		config:   config,
		log:      log,
	}, nil
}

func (s *ArchiveService) Archive(productID, title, body string) {
	if s.s3Client == nil {
		s.log.WithField("product_id", productID).Debug("archiving disabled, skipping")
		return
	}

	payload := fmt.Sprintf("# %s\n\n%s\n", title, body)
	key := fmt.Sprintf("documents/%s.md", productID)

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader([]byte(payload)),
		ContentType:   aws.String("text/markdown; charset=utf-8"),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).
			Warn("failed to archive document")
		return
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"key":        key,
	}).Info("document archived")
}
