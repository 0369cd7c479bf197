package config

import (
	"bytes"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectStore saves receipt uploads and returns a URL they can be fetched
// from later. Uploads happen before the claim row referencing them is
// committed, so a failed store never leaves a claim with dangling metadata.
type ObjectStore interface {
	Store(key, contentType string, content []byte) (string, error)
}

// Storage is the object store used for attachment uploads.
var Storage ObjectStore

// InitStorage selects the storage backend: S3 when AWS_S3_BUCKET is set,
// otherwise the local upload directory.
func InitStorage() {
	if os.Getenv("AWS_S3_BUCKET") != "" {
		Storage = newS3StoreFromEnv()
		log.Println("Object storage: S3 bucket", os.Getenv("AWS_S3_BUCKET"))
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	baseURL := os.Getenv("UPLOAD_BASE_URL")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	Storage = &localStore{dir: uploadPath, baseURL: baseURL}
	log.Println("Object storage: local directory", uploadPath)
}

type s3Store struct {
	accessKeyID     string
	secretAccessKey string
	endpoint        string
	region          string
	bucket          string
	disableSSL      bool
	urlLifeMinutes  int
}

func newS3StoreFromEnv() *s3Store {
	lifeMinutes, _ := strconv.Atoi(os.Getenv("AWS_S3_URL_LIFE_MINUTES"))
	if lifeMinutes == 0 {
		lifeMinutes = 10
	}
	return &s3Store{
		accessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		secretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
		region:          os.Getenv("AWS_REGION"),
		bucket:          os.Getenv("AWS_S3_BUCKET"),
		disableSSL:      os.Getenv("AWS_S3_DISABLE_SSL") == "true",
		urlLifeMinutes:  lifeMinutes,
	}
}

func (s *s3Store) service() (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(s.accessKeyID, s.secretAccessKey, ""),
		Endpoint:         aws.String(s.endpoint),
		Region:           aws.String(s.region),
		DisableSSL:       aws.Bool(s.disableSSL),
		S3ForcePathStyle: aws.Bool(len(s.endpoint) > 0),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// Store uploads content to the bucket and returns its URL. A non-empty
// endpoint means an S3-compatible store (minIO) is in use, which does not
// support the public object URL scheme, so a presigned URL is returned.
func (s *s3Store) Store(key, contentType string, content []byte) (string, error) {
	svc, err := s.service()
	if err != nil {
		return "", err
	}

	if _, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(content),
	}); err != nil {
		return "", err
	}

	if len(s.endpoint) == 0 {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, url.PathEscape(key)), nil
	}

	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(time.Duration(s.urlLifeMinutes) * time.Minute)
}

// localStore writes uploads under a directory on disk, for development and
// single-host deployments.
type localStore struct {
	dir     string
	baseURL string
}

func (l *localStore) Store(key, contentType string, content []byte) (string, error) {
	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return strings.TrimRight(l.baseURL, "/") + "/" + key, nil
}
