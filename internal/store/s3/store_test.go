package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"citymap/internal/store/core"
)

type fakeObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

// fakeClient is an in-memory bucket implementing Client.
type fakeClient struct {
	objects map[string]fakeObject
	pageLen int
	failPut bool
}

func newFakeClient() *fakeClient { return &fakeClient{objects: map[string]fakeObject{}, pageLen: 1} }

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("boom")
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = fakeObject{data: b, contentType: aws.ToString(in.ContentType), metadata: in.Metadata, modified: time.Now()}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	o, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(o.data)),
		ContentLength: aws.Int64(int64(len(o.data))),
		ContentType:   aws.String(o.contentType),
		Metadata:      o.metadata,
		LastModified:  aws.Time(o.modified),
	}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	o, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(o.data))),
		ContentType:   aws.String(o.contentType),
		Metadata:      o.metadata,
		LastModified:  aws.Time(o.modified),
	}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// ListObjectsV2 pages by pageLen so continuation handling is exercised.
func (f *fakeClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	// stable order for paging
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := start + f.pageLen
	if end > len(keys) {
		end = len(keys)
	}
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), Size: aws.Int64(int64(len(f.objects[k].data)))})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewWithClient(newFakeClient(), "plans")
	if s.Driver() != core.DriverS3 {
		t.Fatalf("driver = %s", s.Driver())
	}
	info, err := s.Put(ctx, "a", strings.NewReader("hello"), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"k": "v"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 5 || info.ContentType != "application/json" || info.Metadata["k"] != "v" {
		t.Fatalf("unexpected info %+v", info)
	}
	_, rc, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
	if _, err := s.Put(ctx, "b", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put b: %v", err)
	}
	list, err := s.List(ctx, "")
	if err != nil || len(list) != 2 || list[0].Key != "a" || list[1].Key != "b" {
		t.Fatalf("list: %+v %v", list, err)
	}
}

func TestS3Store_NotFoundMapping(t *testing.T) {
	ctx := context.Background()
	s := NewWithClient(newFakeClient(), "plans")
	if _, _, err := s.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get: expected not found, got %v", err)
	}
	if _, err := s.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("head: expected not found, got %v", err)
	}
	if ok, err := s.Delete(ctx, "nope"); ok || err != nil {
		t.Fatalf("delete missing: %v %v", ok, err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := s.Delete(ctx, "k"); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
}

func TestS3Store_PutError(t *testing.T) {
	fc := newFakeClient()
	fc.failPut = true
	s := NewWithClient(fc, "plans")
	if _, err := s.Put(context.Background(), "k", strings.NewReader("v"), core.PutOptions{}); err == nil {
		t.Fatalf("expected put error")
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}
