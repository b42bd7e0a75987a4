package network

import (
	ctx "context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobScanner is the read-only slice of BlobClient that full-corpus
// scans need. Callers that only walk the listing and stat objects
// should take this instead of the concrete client, so tests can
// inject per-object failures.
type BlobScanner interface {
	List(prefix string) <-chan minio.ObjectInfo
	Stat(key string) (minio.ObjectInfo, error)
}

// BlobClient wraps a minio client scoped to the single bucket the
// gateway stores files in. We expose object-level operations only.
// The gateway puts, gets, stats, lists and deletes objects and issues
// presigned read links; it never creates or reconfigures buckets in
// production, so the client should not be able to either.
// EnsureBucket exists for dev and test setups.
type BlobClient struct {
	client *minio.Client
	bucket string
}

// NewBlobClient returns a BlobClient talking to the S3-compatible
// store at host. Param host is host:port with no scheme.
func NewBlobClient(host, keyID, secretKey string, useSSL bool, bucket string) (*BlobClient, error) {
	client, err := minio.New(
		host,
		&minio.Options{
			Creds:  credentials.NewStaticV4(keyID, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, err
	}
	return &BlobClient{
		client: client,
		bucket: bucket,
	}, nil
}

// Bucket returns the name of the bucket this client operates on.
func (c *BlobClient) Bucket() string {
	return c.bucket
}

// EnsureBucket creates the bucket if it does not already exist.
// Dev and test environments only; production buckets are provisioned
// outside this codebase.
func (c *BlobClient) EnsureBucket() error {
	exists, err := c.client.BucketExists(ctx.Background(), c.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.client.MakeBucket(ctx.Background(), c.bucket, minio.MakeBucketOptions{})
}

// BucketExists returns true if the client's bucket exists. The health
// endpoint uses this as a liveness probe for the blob store.
func (c *BlobClient) BucketExists() (bool, error) {
	return c.client.BucketExists(ctx.Background(), c.bucket)
}

// Put writes the object at key, overwriting any existing object at
// that key without warning.
func (c *BlobClient) Put(key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(
		ctx.Background(),
		c.bucket,
		key,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// Get returns a reader for the object at key. The caller must close it.
func (c *BlobClient) Get(key string) (*minio.Object, error) {
	return c.client.GetObject(ctx.Background(), c.bucket, key, minio.GetObjectOptions{})
}

// Stat returns the object's metadata, including size and content type.
func (c *BlobClient) Stat(key string) (minio.ObjectInfo, error) {
	return c.client.StatObject(ctx.Background(), c.bucket, key, minio.StatObjectOptions{})
}

// Exists returns true if an object exists at key. A missing object is
// not an error; any other stat failure is.
func (c *BlobClient) Exists(key string) (bool, error) {
	_, err := c.client.StatObject(ctx.Background(), c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns a channel of object info for every object under prefix.
// Check the Err field of each item; the minio client reports listing
// failures through the channel, not as a return value.
func (c *BlobClient) List(prefix string) <-chan minio.ObjectInfo {
	return c.client.ListObjects(ctx.Background(), c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
}

// Remove deletes the object at key. Removing a key that does not
// exist is not an error in S3, so callers cannot rely on this to
// detect missing objects.
func (c *BlobClient) Remove(key string) error {
	return c.client.RemoveObject(ctx.Background(), c.bucket, key, minio.RemoveObjectOptions{})
}

// PresignedGet returns a time-limited read link for the object at key.
// S3 caps expiry at 7 days, so "long-lived" links max out there.
func (c *BlobClient) PresignedGet(key string, expiry time.Duration) (*url.URL, error) {
	urlParams := url.Values{}
	return c.client.PresignedGetObject(ctx.Background(), c.bucket, key, expiry, urlParams)
}
