package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmllt/resboard/internal/board"
)

// fakeObjects is an in-memory bucket.
type fakeObjects struct {
	objects map[string][]byte
	bucket  bool
	getErr  error
	putErr  error
	lastCT  string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, bucket: true}
}

func (f *fakeObjects) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if !f.bucket {
		return nil, &smithy.GenericAPIError{Code: "NotFound"}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.lastCT = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func sampleBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New()
	b.AddArea("Team A")
	_, ok := b.AddCard("Alice", "backend")
	require.True(t, ok)
	_, ok = b.AddCard("Bob", "frontend")
	require.True(t, ok)
	require.True(t, b.MoveCard(board.Unassigned, 1, "Team A"))
	return b
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	empty, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{board.Unassigned}, empty.Areas())

	b := sampleBoard(t)
	require.NoError(t, m.Save(ctx, b))
	got, err := m.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(b.Snapshot(), got.Snapshot()); diff != "" {
		t.Errorf("loaded board mismatch (-want +got):\n%s", diff)
	}

	// Later mutations do not leak into the saved copy.
	b.AddArea("Team B")
	got, err = m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.HasArea("Team B"))
}

func TestS3RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeObjects()
	st := newS3(fake, S3Config{Bucket: "boards"}, zap.NewNop().Sugar())

	b := sampleBoard(t)
	require.NoError(t, st.Save(ctx, b))
	assert.Contains(t, fake.objects, DefaultKey)
	assert.Equal(t, "application/json", fake.lastCT)

	got, err := st.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(b.Snapshot(), got.Snapshot()); diff != "" {
		t.Errorf("loaded board mismatch (-want +got):\n%s", diff)
	}
}

func TestS3CustomKey(t *testing.T) {
	fake := newFakeObjects()
	st := newS3(fake, S3Config{Bucket: "boards", Key: "teams/board.json"}, zap.NewNop().Sugar())
	require.NoError(t, st.Save(context.Background(), board.New()))
	assert.Contains(t, fake.objects, "teams/board.json")
}

func TestS3LoadMissingObject(t *testing.T) {
	st := newS3(newFakeObjects(), S3Config{Bucket: "boards"}, zap.NewNop().Sugar())
	b, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{board.Unassigned}, b.Areas())
	assert.Empty(t, b.Cards(board.Unassigned))
}

func TestS3LoadErrors(t *testing.T) {
	fake := newFakeObjects()
	st := newS3(fake, S3Config{Bucket: "boards"}, zap.NewNop().Sugar())

	fake.objects[DefaultKey] = []byte("{not json")
	_, err := st.Load(context.Background())
	assert.ErrorContains(t, err, "error decoding board json")

	boom := errors.New("connection reset")
	fake.getErr = boom
	_, err = st.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestS3SaveError(t *testing.T) {
	fake := newFakeObjects()
	fake.putErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	st := newS3(fake, S3Config{Bucket: "boards"}, zap.NewNop().Sugar())

	err := st.Save(context.Background(), board.New())
	var apiErr smithy.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "AccessDenied", apiErr.ErrorCode())
}

func TestEnsureBucketExists(t *testing.T) {
	fake := newFakeObjects()
	st := newS3(fake, S3Config{Bucket: "boards"}, zap.NewNop().Sugar())
	require.NoError(t, st.EnsureBucketExists(context.Background()))

	fake.bucket = false
	assert.EqualError(t, st.EnsureBucketExists(context.Background()), "bucket boards does not exist")
}

func TestNewS3ClientRequiresEndpoint(t *testing.T) {
	_, err := NewS3Client(context.Background(), S3Config{Bucket: "boards"})
	assert.EqualError(t, err, "S3 endpoint is required")
}

func TestS3LoadMissingBucketIsAnError(t *testing.T) {
	fake := newFakeObjects()
	fake.getErr = &smithy.GenericAPIError{Code: "NoSuchBucket"}
	st := newS3(fake, S3Config{Bucket: "boards"}, zap.NewNop().Sugar())

	b, err := st.Load(context.Background())
	assert.Nil(t, b)
	var apiErr smithy.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NoSuchBucket", apiErr.ErrorCode())
}
