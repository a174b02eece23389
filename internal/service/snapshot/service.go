package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"blood-connect/internal/repository"
	"blood-connect/internal/service/helpers"
)

const rootPrefix = "snapshots/"

// ObjectStorage is the part of *minio.Client snapshots need.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

type Snapshot struct {
	Prefix      string    `json:"prefix"`
	CreatedAt   time.Time `json:"created_at"`
	Collections []string  `json:"collections"`
}

type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
}

type service struct {
	store   repository.RecordStore
	storage ObjectStorage
	bucket  string
	rt      helpers.Runtime
}

func NewService(store repository.RecordStore, storage ObjectStorage, bucket string, rt helpers.Runtime) Service {
	return &service{
		store:   store,
		storage: storage,
		bucket:  bucket,
		rt:      rt,
	}
}

// Export copies every collection document into the bucket under one
// timestamped prefix. A failed upload removes what was already written.
func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	createdAt := s.rt.Timestamp().Truncate(time.Second)
	prefix := rootPrefix + createdAt.Format(time.RFC3339) + "/"
	snap := &Snapshot{Prefix: prefix, CreatedAt: createdAt}

	var written []string
	for _, name := range repository.AllCollections {
		data, err := s.store.Load(ctx, name)
		if err != nil {
			s.cleanup(written)
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		if data == nil {
			data = []byte("[]")
		}

		objectName := prefix + name + ".json"
		_, err = s.storage.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		if err != nil {
			s.cleanup(written)
			return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
		}
		written = append(written, objectName)
		snap.Collections = append(snap.Collections, name)
	}

	s.rt.Log().Info("snapshot exported",
		zap.String("prefix", prefix),
		zap.Int("collections", len(written)))
	return snap, nil
}

func (s *service) cleanup(objects []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, name := range objects {
		if err := s.storage.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			s.rt.Log().Warn("failed to remove partial snapshot object", zap.String("object", name), zap.Error(err))
		}
	}
}

// List returns existing snapshots, newest first.
func (s *service) List(ctx context.Context) ([]Snapshot, error) {
	byPrefix := map[string]*Snapshot{}
	for obj := range s.storage.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: rootPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}

		stamp, file, ok := strings.Cut(strings.TrimPrefix(obj.Key, rootPrefix), "/")
		if !ok {
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			continue
		}

		prefix := rootPrefix + stamp + "/"
		snap, seen := byPrefix[prefix]
		if !seen {
			snap = &Snapshot{Prefix: prefix, CreatedAt: createdAt}
			byPrefix[prefix] = snap
		}
		snap.Collections = append(snap.Collections, strings.TrimSuffix(file, ".json"))
	}

	snapshots := make([]Snapshot, 0, len(byPrefix))
	for _, snap := range byPrefix {
		sort.Strings(snap.Collections)
		snapshots = append(snapshots, *snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}
