package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts       []*s3.PutObjectInput
	bodies     [][]byte
	deletes    []*s3.DeleteObjectsInput
	putErr     error
	deleteErrs []types.Error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectsOutput{Errors: f.deleteErrs}, nil
}

func TestUpload_DevuelveURLPublica(t *testing.T) {
	fake := &fakeS3{}
	st := newS3Storage(fake, "product-images", "https://cdn.example.com/public/", zerolog.Nop())

	url, err := st.Upload(context.Background(), "products/p1/a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/public/products/p1/a.png", url)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "product-images", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "products/p1/a.png", aws.ToString(fake.puts[0].Key))
	assert.Equal(t, "image/png", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, []byte("png"), fake.bodies[0])
}

func TestUpload_ErrorDelCliente(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("timeout")}
	st := newS3Storage(fake, "b", "https://cdn", zerolog.Nop())

	_, err := st.Upload(context.Background(), "x.png", "image/png", nil)
	assert.ErrorContains(t, err, "timeout")
}

func TestDelete_SinRutasNoLlamaAlCliente(t *testing.T) {
	fake := &fakeS3{}
	st := newS3Storage(fake, "b", "https://cdn", zerolog.Nop())

	require.NoError(t, st.Delete(context.Background()))
	assert.Empty(t, fake.deletes)
}

func TestDelete_PartePorLotes(t *testing.T) {
	fake := &fakeS3{}
	st := newS3Storage(fake, "b", "https://cdn", zerolog.Nop())

	paths := make([]string, maxDeleteKeys+5)
	for i := range paths {
		paths[i] = fmt.Sprintf("products/p/%d.png", i)
	}
	require.NoError(t, st.Delete(context.Background(), paths...))
	require.Len(t, fake.deletes, 2)
	assert.Len(t, fake.deletes[0].Delete.Objects, maxDeleteKeys)
	assert.Len(t, fake.deletes[1].Delete.Objects, 5)
}

func TestDelete_ErrorPorObjeto(t *testing.T) {
	fake := &fakeS3{deleteErrs: []types.Error{{Key: aws.String("a.png"), Code: aws.String("AccessDenied")}}}
	st := newS3Storage(fake, "b", "https://cdn", zerolog.Nop())

	err := st.Delete(context.Background(), "a.png")
	assert.ErrorContains(t, err, "AccessDenied")
}
