package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(params.Body)
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *params.Bucket + "/" + *params.Key + "?X-Amz-Signature=abc"}, nil
}

func TestS3Store_SavePresigned(t *testing.T) {
	putter := &fakePutter{}
	presigner := &fakePresigner{}
	s, err := NewS3Store(putter, presigner, S3Config{Bucket: "claims", Prefix: "docs/", PresignTTL: time.Hour})
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "C-1A2B3C4D", "Police Report.TXT", strings.NewReader("report text"))
	require.NoError(t, err)
	require.Regexp(t, `^https://signed\.example/claims/docs/C-1A2B3C4D/[0-9a-f]{32}\.txt\?X-Amz-Signature=abc$`, url)
	require.Equal(t, time.Hour, presigner.expires)

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	require.Equal(t, "claims", *in.Bucket)
	require.Equal(t, int64(len("report text")), *in.ContentLength)
	require.True(t, strings.HasPrefix(*in.ContentType, "text/plain"))
	require.Equal(t, "C-1A2B3C4D", in.Metadata["claim-id"])
	require.Equal(t, "report text", putter.bodies[0])
}

func TestS3Store_SavePublicURL(t *testing.T) {
	s, err := NewS3Store(&fakePutter{}, nil, S3Config{Bucket: "claims", PublicURL: "https://cdn.example/"})
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "C-1", "photo.jpg", strings.NewReader("\xff\xd8\xff"))
	require.NoError(t, err)
	require.Regexp(t, `^https://cdn\.example/C-1/[0-9a-f]{32}\.jpg$`, url)
}

func TestS3Store_Errors(t *testing.T) {
	_, err := NewS3Store(&fakePutter{}, nil, S3Config{})
	require.Error(t, err)
	_, err = NewS3Store(&fakePutter{}, nil, S3Config{Bucket: "claims"})
	require.Error(t, err)

	s, err := NewS3Store(&fakePutter{err: errors.New("access denied")}, &fakePresigner{}, S3Config{Bucket: "claims"})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "C-1", "a.txt", strings.NewReader("x"))
	require.ErrorContains(t, err, "access denied")

	_, err = s.Save(context.Background(), "../x", "a.txt", strings.NewReader("x"))
	require.Error(t, err)
}
