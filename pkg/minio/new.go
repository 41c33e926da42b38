package minio

import (
	"context"
	"net/http"
	"sync"
	"time"

	"dropout-srv/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	maxIdleConns        = 20
	maxIdleConnsPerHost = 20
	idleConnTimeout     = 90 * time.Second
	// maxObjectSize caps artifact downloads held in memory.
	maxObjectSize = 64 << 20
)

// MinIO defines the read-side storage operations the service needs.
type MinIO interface {
	// Connect establishes a connection to MinIO and verifies it's working
	Connect(ctx context.Context) error

	// HealthCheck verifies the connection is still healthy
	HealthCheck(ctx context.Context) error

	// Close marks the client as disconnected
	Close() error

	// GetObject downloads a whole object. Objects above the size cap are rejected.
	GetObject(ctx context.Context, bucketName, objectName string) ([]byte, *ObjectInfo, error)

	// StatObject returns metadata about an object
	StatObject(ctx context.Context, bucketName, objectName string) (*ObjectInfo, error)
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	BucketName   string    `json:"bucket_name"`
	ObjectName   string    `json:"object_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"last_modified"`
}

// implMinIO is the implementation of the MinIO interface.
type implMinIO struct {
	minioClient *minio.Client
	config      *config.MinIOConfig
	mu          sync.RWMutex
	connected   bool
}

// NewMinIO creates a new MinIO client with the provided configuration.
func NewMinIO(cfg *config.MinIOConfig) (MinIO, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}

	return &implMinIO{
		minioClient: client,
		config:      cfg,
	}, nil
}
