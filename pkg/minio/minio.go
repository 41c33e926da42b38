package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Connect verifies the configured bucket is reachable.
func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok, err := m.minioClient.BucketExists(ctx, m.config.Bucket)
	if err != nil {
		m.connected = false
		return handleMinIOError(err, "connect")
	}
	if !ok {
		m.connected = false
		return NewBucketNotFoundError(m.config.Bucket)
	}

	m.connected = true
	return nil
}

// HealthCheck verifies the connection is still healthy.
func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return NewConnectionError(fmt.Errorf("not connected"))
	}

	if _, err := m.minioClient.BucketExists(ctx, m.config.Bucket); err != nil {
		return handleMinIOError(err, "health_check")
	}

	return nil
}

// Close marks the client as disconnected.
// The MinIO client manages its connection pool itself.
func (m *implMinIO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	return nil
}

func (m *implMinIO) StatObject(ctx context.Context, bucketName, objectName string) (*ObjectInfo, error) {
	if err := validateBucketName(bucketName); err != nil {
		return nil, err
	}
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}

	objInfo, err := m.minioClient.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, handleMinIOError(err, "stat_object")
	}

	return &ObjectInfo{
		BucketName:   bucketName,
		ObjectName:   objectName,
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		ETag:         objInfo.ETag,
		LastModified: objInfo.LastModified,
	}, nil
}

func (m *implMinIO) GetObject(ctx context.Context, bucketName, objectName string) ([]byte, *ObjectInfo, error) {
	info, err := m.StatObject(ctx, bucketName, objectName)
	if err != nil {
		return nil, nil, err
	}
	if info.Size > maxObjectSize {
		return nil, nil, NewInvalidInputError(fmt.Sprintf("object %s is %d bytes, limit is %d", objectName, info.Size, maxObjectSize))
	}

	object, err := m.minioClient.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, handleMinIOError(err, "get_object")
	}
	defer object.Close()

	data, err := io.ReadAll(io.LimitReader(object, maxObjectSize+1))
	if err != nil {
		return nil, nil, handleMinIOError(err, "read_object")
	}

	return data, info, nil
}

// handleMinIOError converts MinIO errors to StorageError.
func handleMinIOError(err error, operation string) *StorageError {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchBucket":
		return &StorageError{Code: ErrCodeBucketNotFound, Message: "Bucket not found: " + resp.BucketName, Operation: operation, Cause: err}
	case "NoSuchKey":
		return &StorageError{Code: ErrCodeObjectNotFound, Message: "Object not found: " + resp.Key, Operation: operation, Cause: err}
	case "AccessDenied":
		return &StorageError{Code: ErrCodePermission, Message: "Access denied", Operation: operation, Cause: err}
	case "":
		return &StorageError{Code: ErrCodeConnection, Message: "Storage connection failed", Operation: operation, Cause: err}
	default:
		return &StorageError{
			Code:      ErrCodeConnection,
			Message:   fmt.Sprintf("MinIO operation failed: %s", resp.Code),
			Operation: operation,
			Cause:     err,
		}
	}
}
