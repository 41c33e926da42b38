package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"dropout-srv/config"
	pkgMinio "dropout-srv/pkg/minio"
)

// ObjectGetter downloads whole objects. pkg/minio.MinIO satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucketName, objectName string) ([]byte, *pkgMinio.ObjectInfo, error)
}

// Parse decodes a JSON logistic artifact.
func Parse(data []byte) (*Logistic, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return NewLogistic(a)
}

func LoadFile(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return Parse(data)
}

func LoadMinIO(ctx context.Context, store ObjectGetter, bucket, object string) (*Logistic, error) {
	data, _, err := store.GetObject(ctx, bucket, object)
	if err != nil {
		return nil, fmt.Errorf("download model artifact %s/%s: %w", bucket, object, err)
	}
	return Parse(data)
}

// Load builds the backend named by cfg.Source. store is only used for the minio source.
func Load(ctx context.Context, cfg config.ModelConfig, store ObjectGetter) (Model, error) {
	switch cfg.Source {
	case SourceFile, "":
		return LoadFile(cfg.Path)
	case SourceMinIO:
		if store == nil {
			return nil, fmt.Errorf("%w: minio is not configured", ErrModelUnavailable)
		}
		return LoadMinIO(ctx, store, cfg.Bucket, cfg.Object)
	case SourceRemote:
		return NewRemote(RemoteConfig{URL: cfg.RemoteURL, Timeout: cfg.Timeout})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
