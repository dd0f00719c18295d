package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	deleted []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &noSuchKeyError{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

// DeleteObject succeeds for missing keys, like the real backend.
func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type noSuchKeyError struct{}

func (*noSuchKeyError) Error() string { return "NoSuchKey" }

func TestS3Store_PutThenGet(t *testing.T) {
	backend := newFakeS3()
	store := &S3Store{client: backend, bucket: "archive"}

	err := store.Put(context.Background(), "pages/2025/1/1/abc", []byte("<html></html>"))
	require.NoError(t, err)

	data, err := store.Get(context.Background(), "pages/2025/1/1/abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html></html>"), data)
}

func TestS3Store_GetMissingKeyFails(t *testing.T) {
	store := &S3Store{client: newFakeS3(), bucket: "archive"}

	_, err := store.Get(context.Background(), "pages/nope")
	assert.Error(t, err)
}

func TestS3Store_DeleteToleratesMissingKeys(t *testing.T) {
	backend := newFakeS3()
	store := &S3Store{client: backend, bucket: "archive"}

	require.NoError(t, store.Put(context.Background(), "have", []byte("x")))

	err := store.Delete(context.Background(), []string{"have", "never-existed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"have", "never-existed"}, backend.deleted)
	assert.Empty(t, backend.objects)
}

func TestNewStorageKey_DatePartitionedAndUnique(t *testing.T) {
	a := NewStorageKey()
	b := NewStorageKey()

	assert.True(t, strings.HasPrefix(a, "pages/"), "key %q must be under pages/", a)
	assert.Len(t, strings.Split(a, "/"), 5)
	assert.NotEqual(t, a, b)
}
